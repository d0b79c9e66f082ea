package server

import (
	"encoding/json"
	"net/http"
)

// RoomInfo 巡查接口返回的房间概要
type RoomInfo struct {
	Room    string `json:"room"`
	Players int    `json:"players"`
}

// AdminServer 只读巡查接口：不暴露任何可变状态
type AdminServer struct {
	World *World
}

// HandleRooms 房间巡查
// GET /admin/rooms             返回所有房间与人数
// GET /admin/rooms?room=lobby  返回指定房间的花名册
func (a *AdminServer) HandleRooms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")

	if roomID := r.URL.Query().Get("room"); roomID != "" {
		payload := map[string]any{
			"room":    roomID,
			"players": a.World.Roster(roomID),
		}
		_ = json.NewEncoder(w).Encode(payload)
		return
	}
	_ = json.NewEncoder(w).Encode(a.World.RoomSummaries())
}

// HandleMetrics 输出协议计数与在线规模
// GET /metrics
func (a *AdminServer) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	rooms, players := a.World.Counts()
	payload := map[string]any{
		"rooms":   rooms,
		"players": players,
		"metrics": a.World.Metrics().Snapshot(),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
