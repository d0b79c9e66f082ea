package server

// binding 连接当前归属的（房间, 玩家）对
type binding struct {
	Room   string
	Player PlayerID
}

// IdentityRegistry 连接句柄到（房间, 玩家）的映射
// 只在断线时做反查；不持有玩家状态本身
type IdentityRegistry struct {
	conns map[string]binding
}

func NewIdentityRegistry() *IdentityRegistry {
	return &IdentityRegistry{conns: make(map[string]binding)}
}

// Bind 记录绑定；同一连接的旧绑定被覆盖（last-write-wins）
func (r *IdentityRegistry) Bind(connID, room string, player PlayerID) {
	r.conns[connID] = binding{Room: room, Player: player}
}

// Resolve 反查连接归属；用于断线清理
func (r *IdentityRegistry) Resolve(connID string) (string, PlayerID, bool) {
	b, ok := r.conns[connID]
	return b.Room, b.Player, ok
}

// Unbind 移除绑定；不存在时为 no-op
func (r *IdentityRegistry) Unbind(connID string) {
	delete(r.conns, connID)
}

// UnbindAllFor 移除绑定到指定（房间, 玩家）对的所有连接
// 防止同一逻辑玩家累积陈旧绑定
func (r *IdentityRegistry) UnbindAllFor(room string, player PlayerID) {
	for id, b := range r.conns {
		if b.Room == room && b.Player == player {
			delete(r.conns, id)
		}
	}
}

// Len 当前绑定数
func (r *IdentityRegistry) Len() int {
	return len(r.conns)
}
