package server

import (
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
)

// allowedFrames 可请求的角色帧名白名单
var allowedFrames = map[string]bool{
	"meio":     true,
	"direito":  true,
	"esquerdo": true,
}

// folderPattern 外观文件夹名的安全形态（仅字母数字、下划线、连字符）
var folderPattern = regexp.MustCompile(`^[A-Za-z0-9_\-]+$`)

// AvatarServer 按 (玩家, 帧) 提供 SVG 素材
// 只读玩家目录的外观键，绝不改动核心状态
type AvatarServer struct {
	World   *World
	BaseDir string // 各外观文件夹所在的素材根目录
}

// HandleAvatar 路由：GET /avatar/{player_id}/{frame}.svg
func (a *AvatarServer) HandleAvatar(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/avatar/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || !strings.HasSuffix(parts[1], ".svg") {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	playerID := parts[0]
	frame := strings.TrimSuffix(parts[1], ".svg")

	if !allowedFrames[frame] {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	meta, ok := a.World.Profile(PlayerID(playerID))
	if !ok {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	// 文件夹名必须是 join 时清洗过的安全形态
	if meta.Folder == "" || !folderPattern.MatchString(meta.Folder) {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	baseDir := filepath.Join(a.BaseDir, meta.Folder)
	candidate := filepath.Join(baseDir, frame+".svg")

	// 目录逃逸防护：最终路径必须仍在外观文件夹之内
	rel, err := filepath.Rel(baseDir, candidate)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		http.Error(w, "Security error: path traversal blocked", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	http.ServeFile(w, r, candidate)
}
