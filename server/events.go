package server

import (
	"encoding/json"
	"strconv"
	"strings"
)

// 入站/出站事件名（线上契约，保持稳定）
const (
	EvtJoin      = "join"
	EvtPosUpdate = "pos_update"
	EvtLeave     = "leave"

	EvtJoined       = "joined"
	EvtPlayerJoined = "player_joined"
	EvtPlayerMoved  = "player_moved"
	EvtPlayerLeft   = "player_left"
)

// Envelope 事件外壳（WebSocket 文本消息）
// 示例：{"type":"join","data":{"room":"lobby","name":"Ann"}}
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// EncodeEvent 编码出站事件
func EncodeEvent(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: event, Data: data})
}

// JoinRequest join 事件载荷；坐标保留原始 JSON，由协议层自行解释
type JoinRequest struct {
	Room  string          `json:"room"`
	Name  string          `json:"name"`
	Color string          `json:"color"`
	X     json.RawMessage `json:"x"`
	Y     json.RawMessage `json:"y"`
}

// MoveRequest pos_update 事件载荷
// Name/Folder 用指针区分“缺省”与“显式为空”；朝向与帧号是客户端自有的
// 显示提示，原样透传不校验
type MoveRequest struct {
	Room         string          `json:"room"`
	PlayerID     string          `json:"player_id"`
	X            json.RawMessage `json:"x"`
	Y            json.RawMessage `json:"y"`
	Name         *string         `json:"name"`
	Folder       *string         `json:"folder"`
	FacingRight  json.RawMessage `json:"facingRight"`
	CurrentFrame json.RawMessage `json:"currentFrame"`
}

// LeaveRequest leave 事件载荷
type LeaveRequest struct {
	Room     string `json:"room"`
	PlayerID string `json:"player_id"`
}

// JoinedPayload 私发给加入者：新玩家 ID + 插入后的完整花名册
type JoinedPayload struct {
	PlayerID string                     `json:"player_id"`
	Players  map[string]RoomPlayerState `json:"players"`
}

// PlayerJoinedPayload 广播给房间内其他人
type PlayerJoinedPayload struct {
	PlayerID string  `json:"player_id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Name     string  `json:"name"`
	Folder   string  `json:"folder"`
	Color    string  `json:"color"`
}

// PlayerMovedPayload 位置更新广播；显示提示原样带出
type PlayerMovedPayload struct {
	PlayerID     string          `json:"player_id"`
	X            float64         `json:"x"`
	Y            float64         `json:"y"`
	FacingRight  json.RawMessage `json:"facingRight,omitempty"`
	CurrentFrame json.RawMessage `json:"currentFrame,omitempty"`
}

// PlayerLeftPayload 离开广播，只带玩家 ID
type PlayerLeftPayload struct {
	PlayerID string `json:"player_id"`
}

// cleanString 清洗输入字符串：去首尾空白，结果为空则回退默认值
func cleanString(v, def string) string {
	s := strings.TrimSpace(v)
	if s == "" {
		return def
	}
	return s
}

// parseCoord 把 JSON 原始值解释为坐标：接受数字或数字字符串
// 其余形态（null、布尔、对象、不可解析的字符串）一律判失败
func parseCoord(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
