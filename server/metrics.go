package server

import (
	"sync/atomic"
	"time"
)

// ProtocolMetrics 会话协议运行期计数（用于监控与调试）
type ProtocolMetrics struct {
	Joins          int64 // 成功加入数
	MovesApplied   int64 // 生效的位置更新数
	MovesDropped   int64 // 因畸形坐标或目标不存在被丢弃的更新数
	Leaves         int64 // 显式离开数
	Disconnects    int64 // 断线清理数
	BroadcastsSent int64 // 房间广播次数
}

func (m *ProtocolMetrics) IncJoins()        { atomic.AddInt64(&m.Joins, 1) }
func (m *ProtocolMetrics) IncMovesApplied() { atomic.AddInt64(&m.MovesApplied, 1) }
func (m *ProtocolMetrics) IncMovesDropped() { atomic.AddInt64(&m.MovesDropped, 1) }
func (m *ProtocolMetrics) IncLeaves()       { atomic.AddInt64(&m.Leaves, 1) }
func (m *ProtocolMetrics) IncDisconnects()  { atomic.AddInt64(&m.Disconnects, 1) }
func (m *ProtocolMetrics) IncBroadcasts()   { atomic.AddInt64(&m.BroadcastsSent, 1) }

// Snapshot 返回只读副本，便于 HTTP 输出
func (m *ProtocolMetrics) Snapshot() map[string]any {
	return map[string]any{
		"joins":           atomic.LoadInt64(&m.Joins),
		"moves_applied":   atomic.LoadInt64(&m.MovesApplied),
		"moves_dropped":   atomic.LoadInt64(&m.MovesDropped),
		"leaves":          atomic.LoadInt64(&m.Leaves),
		"disconnects":     atomic.LoadInt64(&m.Disconnects),
		"broadcasts_sent": atomic.LoadInt64(&m.BroadcastsSent),
	}
}

// StartReporter 周期性输出在线规模（房间数/玩家数）到日志
// 协议本身事件驱动、没有世界推进循环，这里只做运维观测
// 返回的函数用于停止上报协程
func (w *World) StartReporter(interval time.Duration) func() {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	quit := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-quit:
				return
			case <-ticker.C:
				rooms, players := w.Counts()
				Log.Infof("presence: rooms=%d players=%d", rooms, players)
			}
		}
	}()
	return func() { close(quit) }
}
