package server

import (
	"sync"

	"github.com/google/uuid"
)

// DefaultName 名字缺省时的兜底文案
const DefaultName = "Player"

// World 会话协议核心：身份、档案、房间三个注册表 + 投递层
// 三个注册表共用一把锁（单一互斥域）：Join/Move/Leave/Disconnect 都是对
// 同一房间条目的读改写，分锁会破坏“空房间即删除”不变式
type World struct {
	mu       sync.Mutex
	identity *IdentityRegistry
	players  *PlayerDirectory
	rooms    *RoomRegistry

	tr      Transport
	metrics *ProtocolMetrics
}

// NewWorld 创建隔离的协议实例；注册表按实例持有，便于测试并行构造
func NewWorld(tr Transport) *World {
	return &World{
		identity: NewIdentityRegistry(),
		players:  NewPlayerDirectory(),
		rooms:    NewRoomRegistry(),
		tr:       tr,
		metrics:  &ProtocolMetrics{},
	}
}

// Metrics 协议计数器（运维接口用）
func (w *World) Metrics() *ProtocolMetrics {
	return w.metrics
}

// HandleJoin 加入房间：Unjoined → Joined
// 房间名必填；名字与外观键走兜底；坐标解析失败静默归零
func (w *World) HandleJoin(c Conn, req JoinRequest) {
	if c == nil {
		return
	}
	room := cleanString(req.Room, "")
	if room == "" {
		// 不创建任何状态，也不回包
		return
	}
	name := cleanString(req.Name, DefaultName)
	folder := cleanString(req.Color, "")
	if !IsAllowedFolder(folder) {
		folder = DefaultFolder()
	}

	// 解析失败或缺失一律落到原点，不向客户端报错
	x, ok := parseCoord(req.X)
	if !ok {
		x = 0
	}
	y, ok := parseCoord(req.Y)
	if !ok {
		y = 0
	}

	playerID := PlayerID(uuid.New().String())

	// 先订阅房间通道；订阅异常由投递层记日志，不中断加入
	w.tr.Subscribe(c, room)

	w.mu.Lock()
	w.identity.Bind(c.ID(), room, playerID)
	w.players.Register(playerID, name, folder)
	st := &RoomPlayerState{X: x, Y: y, Name: name, Folder: folder, Color: ColorFor(folder)}
	w.rooms.PutPlayer(room, playerID, st)
	// 花名册在插入之后取快照：加入者在自己的首份名册里可见
	roster := w.rooms.ListPlayers(room)
	w.mu.Unlock()

	w.metrics.IncJoins()
	Log.Infof("join: room=%s player=%s name=%q folder=%s", room, playerID, name, folder)

	w.tr.Send(c, EvtJoined, JoinedPayload{PlayerID: string(playerID), Players: roster})
	w.broadcast(room, EvtPlayerJoined, PlayerJoinedPayload{
		PlayerID: string(playerID),
		X:        x,
		Y:        y,
		Name:     name,
		Folder:   folder,
		Color:    ColorFor(folder),
	}, c)
}

// HandleMove 位置/外观更新：Joined 自环
// 与 Join 不同：坐标解析失败丢弃整个事件——畸形更新不应把玩家瞬移回原点
func (w *World) HandleMove(c Conn, req MoveRequest) {
	if req.Room == "" || req.PlayerID == "" {
		return
	}
	id := PlayerID(req.PlayerID)

	w.mu.Lock()
	st, ok := w.rooms.GetPlayer(req.Room, id)
	if !ok {
		// 陈旧连接的更新，静默丢弃
		w.mu.Unlock()
		w.metrics.IncMovesDropped()
		return
	}

	// 缺省坐标沿用现值；出现但不可解析则整包丢弃
	x, y := st.X, st.Y
	if len(req.X) > 0 {
		v, ok := parseCoord(req.X)
		if !ok {
			w.mu.Unlock()
			w.metrics.IncMovesDropped()
			return
		}
		x = v
	}
	if len(req.Y) > 0 {
		v, ok := parseCoord(req.Y)
		if !ok {
			w.mu.Unlock()
			w.metrics.IncMovesDropped()
			return
		}
		y = v
	}

	st.X = x
	st.Y = y
	if req.Name != nil {
		st.Name = cleanString(*req.Name, st.Name)
	}
	if req.Folder != nil {
		// 枚举外的外观键静默忽略，保留旧值；颜色始终由当前键派生
		f := cleanString(*req.Folder, st.Folder)
		if IsAllowedFolder(f) {
			st.Folder = f
			st.Color = ColorFor(f)
		}
	}
	w.mu.Unlock()

	w.metrics.IncMovesApplied()
	w.broadcast(req.Room, EvtPlayerMoved, PlayerMovedPayload{
		PlayerID:     req.PlayerID,
		X:            x,
		Y:            y,
		FacingRight:  req.FacingRight,
		CurrentFrame: req.CurrentFrame,
	}, c)
}

// HandleLeave 显式离开：Joined → Left（终态，幂等）
func (w *World) HandleLeave(c Conn, req LeaveRequest) {
	if req.Room == "" || req.PlayerID == "" {
		return
	}
	id := PlayerID(req.PlayerID)

	w.mu.Lock()
	removed := w.removePlayerLocked(req.Room, id)
	w.mu.Unlock()

	if !removed {
		// 已经离开过（或从未加入）：纯 no-op
		return
	}

	if c != nil {
		w.tr.Unsubscribe(c, req.Room)
	}
	w.metrics.IncLeaves()
	Log.Infof("leave: room=%s player=%s", req.Room, id)
	w.broadcast(req.Room, EvtPlayerLeft, PlayerLeftPayload{PlayerID: req.PlayerID}, c)
}

// HandleDisconnect 连接丢失：任意状态 → Disconnected（终态，幂等）
// 通过身份注册表反查归属；查无绑定（含已显式离开）则什么都不做
func (w *World) HandleDisconnect(c Conn) {
	if c == nil {
		return
	}

	w.mu.Lock()
	room, id, ok := w.identity.Resolve(c.ID())
	if !ok {
		w.mu.Unlock()
		return
	}
	w.identity.Unbind(c.ID())
	removed := w.removePlayerLocked(room, id)
	w.mu.Unlock()

	w.tr.Unsubscribe(c, room)
	if !removed {
		return
	}
	w.metrics.IncDisconnects()
	Log.Infof("disconnect: room=%s player=%s", room, id)
	w.broadcast(room, EvtPlayerLeft, PlayerLeftPayload{PlayerID: string(id)}, c)
}

// removePlayerLocked 共享清理：从三个注册表清除一个逻辑玩家
// 调用方必须持有 w.mu；返回是否真的移除了
func (w *World) removePlayerLocked(room string, id PlayerID) bool {
	if !w.rooms.RemovePlayer(room, id) {
		return false
	}
	w.identity.UnbindAllFor(room, id)
	w.players.Remove(id)
	return true
}

// broadcast 房间内扇出并计数
func (w *World) broadcast(room, event string, payload any, exclude Conn) {
	w.tr.Broadcast(room, event, payload, exclude)
	w.metrics.IncBroadcasts()
}

// Profile 只读查询玩家档案（头像服务用）
func (w *World) Profile(id PlayerID) (Profile, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.players.Get(id)
}

// Roster 只读查询房间花名册（巡查接口用）
func (w *World) Roster(roomID string) map[string]RoomPlayerState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rooms.ListPlayers(roomID)
}

// RoomSummaries 所有房间与人数（巡查接口用）
func (w *World) RoomSummaries() []RoomInfo {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]RoomInfo, 0)
	for _, id := range w.rooms.RoomIDs() {
		out = append(out, RoomInfo{Room: id, Players: len(w.rooms.ListPlayers(id))})
	}
	return out
}

// Counts 房间总数与玩家总数
func (w *World) Counts() (rooms, players int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rooms.Counts()
}
