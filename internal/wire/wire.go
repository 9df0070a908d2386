// Package wire provides dependency injection for the deck application.
// It creates singleton services with lazy initialization: the first
// accessor call loads the config, picks the gateway for the configured
// mode, and starts the synchronization engine.
package wire

import (
	"database/sql"
	"log"
	"os"
	"sync"

	cliadapter "github.com/example/deck/internal/adapters/cli"
	"github.com/example/deck/internal/adapters/rest"
	"github.com/example/deck/internal/adapters/sqlite"
	"github.com/example/deck/internal/app"
	"github.com/example/deck/internal/config"
	"github.com/example/deck/internal/db"
	"github.com/example/deck/internal/ports/primary"
	"github.com/example/deck/internal/ports/secondary"
	"github.com/example/deck/internal/store"
)

var (
	cfg           config.Config
	database      *sql.DB
	entityStore   *store.Store
	engine        *app.Engine
	boardService  primary.BoardService
	columnService primary.ColumnService
	cardService   primary.CardService
	tagService    primary.TagService
	dragService   primary.DragService
	once          sync.Once
)

// Config returns the loaded configuration.
func Config() config.Config {
	once.Do(initServices)
	return cfg
}

// ConfigOnly loads the configuration without starting services. Commands
// that manage their own resources (like serve) use this to avoid opening
// the database twice.
func ConfigOnly() config.Config {
	return loadConfig()
}

// Store returns the singleton entity store.
func Store() *store.Store {
	once.Do(initServices)
	return entityStore
}

// Engine returns the singleton synchronization engine.
func Engine() *app.Engine {
	once.Do(initServices)
	return engine
}

// BoardService returns the singleton BoardService instance.
func BoardService() primary.BoardService {
	once.Do(initServices)
	return boardService
}

// ColumnService returns the singleton ColumnService instance.
func ColumnService() primary.ColumnService {
	once.Do(initServices)
	return columnService
}

// CardService returns the singleton CardService instance.
func CardService() primary.CardService {
	once.Do(initServices)
	return cardService
}

// TagService returns the singleton TagService instance.
func TagService() primary.TagService {
	once.Do(initServices)
	return tagService
}

// DragService returns the singleton DragService instance.
func DragService() primary.DragService {
	once.Do(initServices)
	return dragService
}

// BoardAdapter returns a new BoardAdapter writing to stdout.
func BoardAdapter() *cliadapter.BoardAdapter {
	once.Do(initServices)
	return cliadapter.NewBoardAdapter(boardService, entityStore, os.Stdout)
}

// TransferAdapter returns a new TransferAdapter writing to stdout.
func TransferAdapter() *cliadapter.TransferAdapter {
	once.Do(initServices)
	return cliadapter.NewTransferAdapter(boardService, columnService, cardService, tagService, entityStore, os.Stdout)
}

// OpenDatabase opens the configured local database. Used by `deck serve`,
// which needs a gateway without the engine in front of it.
func OpenDatabase() (*sql.DB, error) {
	path := loadConfig().DatabasePath
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return db.Open(path)
}

// Shutdown drains the engine so queued remote calls complete before the
// process exits. Safe to call when services were never initialized.
func Shutdown() {
	if engine == nil {
		return
	}
	engine.Flush()
	engine.Close()
	if database != nil {
		database.Close()
	}
}

func loadConfig() config.Config {
	path := os.Getenv("DECK_CONFIG")
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			log.Fatalf("failed to resolve config path: %v", err)
		}
	}
	c, err := config.Load(path)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return c
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	cfg = loadConfig()

	var gateway secondary.Gateway
	switch cfg.Mode {
	case config.ModeRemote:
		gateway = rest.NewGateway(cfg.ServerURL)
	default:
		var err error
		database, err = OpenDatabase()
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		gateway = sqlite.NewGateway(database)
	}

	entityStore = store.New()
	notifier := cliadapter.NewNotifier(os.Stderr)
	engine = app.NewEngine(entityStore, gateway, notifier, log.New(os.Stderr, "deck: ", log.LstdFlags))

	boardService = app.NewBoardService(engine)
	columnService = app.NewColumnService(engine)
	cardService = app.NewCardService(engine)
	tagService = app.NewTagService(engine)
	dragService = app.NewDragService(engine, cardService)
}
