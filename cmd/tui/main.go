package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Varun5711/carmate/cmd/tui/ui"
	"github.com/Varun5711/carmate/internal/apiclient"
	"github.com/Varun5711/carmate/internal/cache"
	"github.com/Varun5711/carmate/internal/config"
	"github.com/Varun5711/carmate/internal/errlog"
	"github.com/Varun5711/carmate/internal/logger"
	"github.com/Varun5711/carmate/internal/redis"
	"github.com/Varun5711/carmate/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

const sessionKeyPrefix = "carmate:session:"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Configure(cfg.Log.Level, cfg.Log.File)
	log := logger.New("tui")
	defer log.Sync()
	log.SetStdLog()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	rdb, err := redis.Connect(ctx, cfg.Redis)
	cancel()
	if err != nil {
		log.Warn("Redis unavailable, keeping sessions in memory: %v", err)
		rdb = nil
	}
	defer rdb.Close()

	var store session.Store
	if rdb != nil {
		store = session.NewStore(cache.NewTiered(cfg.Session.CacheCapacity, rdb.Raw(), sessionKeyPrefix, cfg.Session.TTL))
	} else {
		store = session.NewMemoryStore(cfg.Session.CacheCapacity)
	}

	sessionID := cfg.Session.ID
	if sessionID == "" {
		sessionID = session.NewID()
	}

	sess, err := store.Load(context.Background(), sessionID)
	if err != nil {
		log.Warn("Starting with an empty session: %v", err)
		sess = &session.Session{}
	}
	log.Info("Session %s (authenticated=%t), backend %s", sessionID, sess.IsAuthenticated(), cfg.API.BaseURL)

	env := &ui.Env{
		API:       apiclient.New(cfg.API, logger.New("apiclient")),
		Session:   sess,
		Errors:    errlog.New(),
		Store:     store,
		SessionID: sessionID,
		Log:       logger.New("page"),
		Now:       time.Now,
	}

	p := tea.NewProgram(ui.NewModel(env), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if rdb != nil {
		fmt.Printf("Resume this session with SESSION_ID=%s\n", sessionID)
	}
}
