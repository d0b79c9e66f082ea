package server

// Conn 连接发送端抽象：会话协议只依赖稳定 ID 与非阻塞入队
// 测试用假实现即可驱动整个协议，无需真实网络
type Conn interface {
	ID() string
	Enqueue(b []byte)
}

// Transport 房间级消息投递抽象，由 WebSocket 层实现
// Subscribe/Unsubscribe 失败只记日志，绝不打断状态迁移
type Transport interface {
	Send(c Conn, event string, payload any)
	Broadcast(roomID, event string, payload any, exclude Conn)
	Subscribe(c Conn, roomID string)
	Unsubscribe(c Conn, roomID string)
}
