package bot

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"github.com/Wolfiri/b1nb0t/command"
	"github.com/Wolfiri/b1nb0t/config"
	"github.com/Wolfiri/b1nb0t/db"
	"github.com/Wolfiri/b1nb0t/emoji"
	"github.com/Wolfiri/b1nb0t/handler/blob"
	"github.com/Wolfiri/b1nb0t/notify"
	"github.com/Wolfiri/b1nb0t/review"
)

var dg *discordgo.Session

// Start 启动机器人
func Start() {
	err := config.LoadConfig()
	if err != nil {
		log.Printf("加载配置文件时出错: %v", err)
		return
	}

	db.InitDB(config.Cfg.EmojiMod.DBPath)

	// 使用提供的机器人令牌创建一个新的 Discord 会话
	dg, err = discordgo.New("Bot " + config.Cfg.Token)
	if err != nil {
		log.Printf("创建 Discord 会话时出错, %v", err)
		return
	}

	mod := config.Cfg.EmojiMod
	host := emoji.NewManager(dg, mod.GuildID, mod.EmojiRoleID)
	dispatcher := notify.NewDispatcher(dg, mod.ApproveMarker, mod.RejectMarker)
	engine := review.NewEngine(db.Store{}, host, dispatcher, review.Config{
		SuggestionChannelID:    mod.SuggestionChannelID,
		CouncilQueueChannelID:  mod.CouncilQueueChannelID,
		ChangelogChannelID:     mod.ChangelogChannelID,
		ApprovalQueueChannelID: mod.ApprovalQueueChannelID,
		ApproveMarker:          mod.ApproveMarker,
		RejectMarker:           mod.RejectMarker,
	})

	blob.Setup(engine, host, dispatcher, mod.ApproveMarker, mod.RejectMarker)
	blob.RegisterHandlers()

	registerEventHandlers(dg)

	err = dg.Open()
	if err != nil {
		log.Printf("error opening connection, %v", err)
		return
	}

	for _, cmd := range command.AllCommands {
		_, err := dg.ApplicationCommandCreate(dg.State.User.ID, mod.GuildID, cmd)
		if err != nil {
			log.Fatalf("Cannot create '%v' command: %v", cmd.Name, err)
		}
	}

	log.Printf("Bot is now running. Press CTRL-C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	dg.Close()
}

// GetSession 返回当前的 Discord 会话
func GetSession() *discordgo.Session {
	return dg
}
