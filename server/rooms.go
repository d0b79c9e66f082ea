package server

// RoomPlayerState 房间内单个玩家的广播可见状态
// 名字/外观/颜色是档案的快照，随 pos_update 一起就地更新
type RoomPlayerState struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Name   string  `json:"name"`
	Folder string  `json:"folder"`
	Color  string  `json:"color"`
}

// Room 房间：ID + 玩家到状态的映射
type Room struct {
	ID      string
	Players map[PlayerID]*RoomPlayerState
}

// NewRoom 创建空房间
func NewRoom(id string) *Room {
	return &Room{ID: id, Players: make(map[PlayerID]*RoomPlayerState)}
}

// RoomRegistry 房间注册表，独占持有全部 RoomPlayerState
// 不变式：空房间不驻留（最后一人离开即删除整个房间）
type RoomRegistry struct {
	rooms map[string]*Room
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{rooms: make(map[string]*Room)}
}

// EnsureRoom 获取房间，不存在则惰性创建
func (r *RoomRegistry) EnsureRoom(id string) *Room {
	room, ok := r.rooms[id]
	if !ok {
		room = NewRoom(id)
		r.rooms[id] = room
	}
	return room
}

// PutPlayer 写入（或覆盖）玩家的房间内状态；必要时创建房间
func (r *RoomRegistry) PutPlayer(roomID string, id PlayerID, st *RoomPlayerState) {
	r.EnsureRoom(roomID).Players[id] = st
}

// RemovePlayer 移除玩家状态；房间随之变空则整体删除
// 返回是否真的移除了（幂等：重复调用返回 false）
func (r *RoomRegistry) RemovePlayer(roomID string, id PlayerID) bool {
	room, ok := r.rooms[roomID]
	if !ok {
		return false
	}
	if _, ok := room.Players[id]; !ok {
		return false
	}
	delete(room.Players, id)
	if len(room.Players) == 0 {
		delete(r.rooms, roomID)
	}
	return true
}

// GetPlayer 查询玩家的房间内状态
func (r *RoomRegistry) GetPlayer(roomID string, id PlayerID) (*RoomPlayerState, bool) {
	room, ok := r.rooms[roomID]
	if !ok {
		return nil, false
	}
	st, ok := room.Players[id]
	return st, ok
}

// ListPlayers 返回房间花名册的值快照（房间不存在时为空映射）
// 键用 string 以便直接进 JSON 载荷
func (r *RoomRegistry) ListPlayers(roomID string) map[string]RoomPlayerState {
	out := make(map[string]RoomPlayerState)
	room, ok := r.rooms[roomID]
	if !ok {
		return out
	}
	for id, st := range room.Players {
		out[string(id)] = *st
	}
	return out
}

// HasRoom 房间是否存在
func (r *RoomRegistry) HasRoom(id string) bool {
	_, ok := r.rooms[id]
	return ok
}

// RoomIDs 当前全部房间 ID
func (r *RoomRegistry) RoomIDs() []string {
	ids := make([]string, 0, len(r.rooms))
	for id := range r.rooms {
		ids = append(ids, id)
	}
	return ids
}

// Counts 房间总数与玩家总数（运维观测用）
func (r *RoomRegistry) Counts() (rooms, players int) {
	rooms = len(r.rooms)
	for _, room := range r.rooms {
		players += len(room.Players)
	}
	return rooms, players
}
