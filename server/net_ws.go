package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ClientConn 负责发送（写）数据到客户端的轻量包装
// id 在升级时生成，整个连接生命周期内稳定（身份注册表的键）
type ClientConn struct {
	id   string
	ws   *websocket.Conn
	send chan []byte
	once sync.Once
}

func NewClientConn(ws *websocket.Conn) *ClientConn {
	return &ClientConn{
		id:   uuid.New().String(),
		ws:   ws,
		send: make(chan []byte, 64),
	}
}

// ID 连接句柄标识
func (c *ClientConn) ID() string {
	return c.id
}

// Enqueue 将要发送的消息压入队列（非阻塞，满则丢弃）
func (c *ClientConn) Enqueue(b []byte) {
	select {
	case c.send <- b:
	default:
		// 为了实时性，丢弃消息（防止慢连接阻塞广播）
	}
}

// Close 结束写协程并关闭底层连接
func (c *ClientConn) Close() {
	c.once.Do(func() {
		close(c.send)
	})
	_ = c.ws.Close()
}

// writePump 独立协程，负责从 send 队列写出到 WS
func (c *ClientConn) writePump() {
	defer c.ws.Close()
	for msg := range c.send {
		c.ws.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// readPump 读取客户端事件并分发给会话协议；读退出即视为断线
func (c *ClientConn) readPump(world *World, tr *WSTransport) {
	defer func() {
		world.HandleDisconnect(c)
		tr.Drop(c)
		c.Close()
	}()
	c.ws.SetReadLimit(1 << 20) // 1MB
	c.ws.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.ws.SetPongHandler(func(string) error { c.ws.SetReadDeadline(time.Now().Add(60 * time.Second)); return nil })

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		c.ws.SetReadDeadline(time.Now().Add(60 * time.Second))
		var env Envelope
		if err := json.Unmarshal(payload, &env); err != nil {
			// 畸形外壳：按协议静默丢弃
			continue
		}
		switch env.Type {
		case EvtJoin:
			var req JoinRequest
			if err := json.Unmarshal(env.Data, &req); err != nil {
				continue
			}
			world.HandleJoin(c, req)
		case EvtPosUpdate:
			var req MoveRequest
			if err := json.Unmarshal(env.Data, &req); err != nil {
				continue
			}
			world.HandleMove(c, req)
		case EvtLeave:
			var req LeaveRequest
			if err := json.Unmarshal(env.Data, &req); err != nil {
				continue
			}
			world.HandleLeave(c, req)
		default:
			// 未知事件不回错误（fail-silent）
		}
	}
}

// WSTransport 房间订阅关系与扇出投递（Transport 的 WebSocket 实现）
type WSTransport struct {
	mu    sync.RWMutex
	rooms map[string]map[string]Conn // roomID -> connID -> conn
}

func NewWSTransport() *WSTransport {
	return &WSTransport{rooms: make(map[string]map[string]Conn)}
}

// Subscribe 把连接挂入房间通道
func (t *WSTransport) Subscribe(c Conn, roomID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	members, ok := t.rooms[roomID]
	if !ok {
		members = make(map[string]Conn)
		t.rooms[roomID] = members
	}
	members[c.ID()] = c
}

// Unsubscribe 把连接摘出房间通道；空通道一并回收
func (t *WSTransport) Unsubscribe(c Conn, roomID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	members, ok := t.rooms[roomID]
	if !ok {
		return
	}
	delete(members, c.ID())
	if len(members) == 0 {
		delete(t.rooms, roomID)
	}
}

// Drop 把连接从所有房间通道摘除（断线兜底）
func (t *WSTransport) Drop(c Conn) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for roomID, members := range t.rooms {
		delete(members, c.ID())
		if len(members) == 0 {
			delete(t.rooms, roomID)
		}
	}
}

// Send 私发单个连接
func (t *WSTransport) Send(c Conn, event string, payload any) {
	b, err := EncodeEvent(event, payload)
	if err != nil {
		Log.Errorf("encode %s: %v", event, err)
		return
	}
	c.Enqueue(b)
}

// Broadcast 房间内扇出，exclude 指定要跳过的发起方
func (t *WSTransport) Broadcast(roomID, event string, payload any, exclude Conn) {
	b, err := EncodeEvent(event, payload)
	if err != nil {
		Log.Errorf("encode %s: %v", event, err)
		return
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, c := range t.rooms[roomID] {
		if exclude != nil && c.ID() == exclude.ID() {
			continue
		}
		c.Enqueue(b)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 演示环境：允许所有来源（生产环境需严格限制）
		return true
	},
}

// SocketServer WebSocket 接入层：升级连接并喂给会话协议
type SocketServer struct {
	World *World
	tr    *WSTransport
}

func NewSocketServer() *SocketServer {
	tr := NewWSTransport()
	return &SocketServer{World: NewWorld(tr), tr: tr}
}

// HandleWS WebSocket 接入：连接先升级，加入房间靠后续 join 事件
func (s *SocketServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		Log.Errorf("upgrade error: %v", err)
		return
	}

	client := NewClientConn(ws)
	go client.writePump()
	go client.readPump(s.World, s.tr)
}
