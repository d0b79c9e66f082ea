package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"miniplaza/server"
)

// MiniPlaza 入口：启动 HTTP + WebSocket 在线状态服务
func main() {
	cfg := server.LoadConfig()

	var addr string
	flag.StringVar(&addr, "addr", cfg.Addr, "server listen address, e.g. :8080")
	flag.Parse()

	// 使用第三方 zap 日志库写入文件（带滚动）
	if err := server.InitLogger(cfg.LogFile); err != nil {
		panic(err)
	}
	defer server.SyncLogger()

	ss := server.NewSocketServer()
	admin := &server.AdminServer{World: ss.World}
	avatar := &server.AvatarServer{World: ss.World, BaseDir: cfg.AvatarDir}

	// 周期性记录在线规模
	stopReporter := ss.World.StartReporter(cfg.ReportInterval)
	defer stopReporter()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", ss.HandleWS)
	// 前后端分离：将 / 映射到 web 目录的静态资源
	mux.Handle("/", http.FileServer(http.Dir(cfg.WebDir)))
	// 角色素材按 (玩家, 帧) 动态取
	mux.HandleFunc("/avatar/", avatar.HandleAvatar)
	// 巡查与监控接口
	mux.HandleFunc("/admin/rooms", admin.HandleRooms)
	mux.HandleFunc("/metrics", admin.HandleMetrics)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		server.Log.Infof("MiniPlaza listening on %s; open http://localhost%v/", addr, addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			server.Log.Fatalf("listen: %v", err)
		}
	}()

	// 优雅退出（Ctrl+C）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	server.Log.Info("Shutting down...")
}
