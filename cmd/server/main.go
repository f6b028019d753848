package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/ThePuug/unnamed-hex-tile-mmo-sub003/internal/api"
	"github.com/ThePuug/unnamed-hex-tile-mmo-sub003/internal/config"
	"github.com/ThePuug/unnamed-hex-tile-mmo-sub003/internal/game"
	"github.com/ThePuug/unnamed-hex-tile-mmo-sub003/internal/ipc"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("💡 No .env file found, using environment variables only")
	} else {
		log.Println("✅ Loaded environment from .env")
	}

	log.Println("⚔️ ================================")
	log.Println("⚔️  COMBAT RESOLUTION SERVER")
	log.Println("⚔️ ================================")

	// Load centralized configuration (SSOT - Single Source of Truth)
	appConfig := config.Load()
	engineCfg := appConfig.Engine
	serverCfg := appConfig.Server

	log.Printf("🎮 Config: %d TPS, %dms base window, %s respawn delay",
		engineCfg.TickRate, engineCfg.BaseReactionWindow.Milliseconds(), engineCfg.RespawnDelay)

	// Create combat engine with centralized config
	engine := game.NewEngine(game.EngineConfig{
		TickRate:           engineCfg.TickRate,
		BaseReactionWindow: engineCfg.BaseReactionWindow,
		RespawnDelay:       engineCfg.RespawnDelay,
		CombatExitDelay:    engineCfg.CombatExitDelay,
		Limits:             game.ResourceLimits(appConfig.Limits),
	})
	limits := engine.GetLimits()
	log.Printf("🛡️ Resource limits: %d actors total, %d per snapshot",
		limits.MaxTotalActors, limits.MaxActors)

	// Start event log
	if err := engine.StartEventLog(serverCfg.EventLogPath); err != nil {
		log.Printf("⚠️ Event log disabled: %v", err)
	} else {
		log.Printf("📝 Event log: %s", serverCfg.EventLogPath)
	}

	// Start debug server
	debugCfg := api.DefaultObservabilityConfig()
	if os.Getenv("DISABLE_DEBUG_SERVER") != "true" {
		if err := api.StartDebugServer(debugCfg); err != nil {
			log.Printf("⚠️ Debug server disabled: %v", err)
		}
	}

	// Local observer feed over the snapshot socket
	var publisher *ipc.Publisher
	if serverCfg.SnapshotSocket != "" {
		var err error
		publisher, err = ipc.NewPublisher(serverCfg.SnapshotSocket)
		if err != nil {
			log.Printf("⚠️ Snapshot feed disabled: %v", err)
		} else {
			publisher.SetConfig(ipc.ConfigMessage{
				TickRate:             engineCfg.TickRate,
				BaseReactionWindowMs: engineCfg.BaseReactionWindow.Milliseconds(),
			})
			engine.SetSnapshotSink(publisher.PublishSnapshot)
		}
	}

	// Create API server
	server := api.NewServer(engine)

	// Start combat engine
	engine.Start()
	log.Println("✅ Combat engine started")

	// Start API server in goroutine
	go func() {
		addr := ":" + strconv.Itoa(serverCfg.Port)
		log.Printf("🌐 API server on http://localhost%s", addr)
		log.Printf("🔌 WebSocket: ws://localhost%s/ws", addr)

		if err := server.Start(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Println("✅ Server ready! Press Ctrl+C to stop.")
	<-quit

	log.Println("🛑 Shutting down...")
	server.Stop()
	if publisher != nil {
		publisher.Close()
	}
	engine.StopEventLog()
	engine.Stop()
	log.Println("👋 Goodbye!")
}
