package config

import (
	"github.com/spf13/viper"
)

// Config 对应于 config.yaml 的顶级结构
type Config struct {
	Token    string   `mapstructure:"TOKEN"`
	EmojiMod EmojiMod `mapstructure:"emojiMod"`
	Auth     Auth     `mapstructure:"auth"`
}

// EmojiMod 对应 "emojiMod" 部分
type EmojiMod struct {
	GuildID                string `mapstructure:"guild_id"`
	SuggestionChannelID    string `mapstructure:"suggestion_channel_id"`
	CouncilQueueChannelID  string `mapstructure:"council_queue_channel_id"`
	ChangelogChannelID     string `mapstructure:"changelog_channel_id"`
	ApprovalQueueChannelID string `mapstructure:"approval_queue_channel_id"`

	// EmojiRoleID is the role the ephemeral emoji is restricted to while the
	// submission is under review.
	EmojiRoleID string `mapstructure:"emoji_role_id"`

	// Markers are the decision reaction emojis in "name:id" form.
	ApproveMarker string `mapstructure:"approve_marker"`
	RejectMarker  string `mapstructure:"reject_marker"`

	DataDir string `mapstructure:"data_dir"`
	DBPath  string `mapstructure:"db_path"`
}

// Auth 对应 "auth" 部分
type Auth struct {
	Developers   []string `mapstructure:"Developers"`
	CouncilRoles []string `mapstructure:"CouncilRoles"`
}

var Cfg Config

func LoadConfig() (err error) {
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.SetDefault("emojiMod.data_dir", "./data")
	viper.SetDefault("emojiMod.db_path", "./data/emojis.db")
	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&Cfg)
	return
}
