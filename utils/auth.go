package utils

import (
	"slices"

	"github.com/Wolfiri/b1nb0t/config"
)

// CheckAuth 检查用户是否有权限使用审核命令
func CheckAuth(userID string, roles []string) bool {
	authConfig := config.Cfg.Auth

	// 检查是否为开发者
	if slices.Contains(authConfig.Developers, userID) {
		return true
	}

	// 检查是否拥有审核身份组
	for _, role := range roles {
		if slices.Contains(authConfig.CouncilRoles, role) {
			return true
		}
	}

	return false
}
