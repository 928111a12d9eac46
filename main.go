// Command sokoban starts the Sokoban puzzle server.
//
// It supports three modes:
//  1. "serve" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//  3. "play" – plays a level interactively in the terminal
//
// Flags control host/port, level directory, debug logging, and optional
// ngrok tunneling for easy external access during development.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/sokoban-go/sokoban/api"
	"github.com/sokoban-go/sokoban/game/config"
	"github.com/sokoban-go/sokoban/game/engine"
	"github.com/sokoban-go/sokoban/game/service"
	"github.com/sokoban-go/sokoban/game/session"
	"github.com/sokoban-go/sokoban/transport/mcp"
	"github.com/sokoban-go/sokoban/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Sokoban Puzzle Server"
)

// getLevelDirDefault returns the default level directory.
// It first honors the LEVEL_DIR environment variable, then falls back to "levels".
func getLevelDirDefault() string {
	if levelDir := os.Getenv("LEVEL_DIR"); levelDir != "" {
		return levelDir
	}
	return "levels"
}

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	root := &cli.Command{
		Name:           "sokoban",
		Usage:          "Sokoban puzzle engine with REST, WebSocket and MCP interfaces",
		Version:        Version,
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run HTTP server with API, WebSocket, and MCP endpoint",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "host", Value: "localhost", Usage: "HTTP server host"},
					&cli.IntFlag{Name: "port", Value: 8080, Usage: "HTTP server port"},
					&cli.StringFlag{Name: "level-dir", Value: getLevelDirDefault(), Usage: "Directory containing levels"},
					&cli.BoolFlag{Name: "debug", Usage: "Enable debug logging"},
					&cli.BoolFlag{Name: "ngrok", Usage: "Enable ngrok tunnel"},
					&cli.StringFlag{Name: "ngrok-auth", Usage: "Ngrok auth token (or use NGROK_AUTHTOKEN env var)"},
					&cli.StringFlag{Name: "ngrok-domain", Usage: "Custom ngrok domain (optional)"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					setupLogging(cmd.Bool("debug"))
					log.Printf("Starting %s v%s (mode: serve)", AppName, Version)

					gameService, sessionManager, err := initializeServices(cmd.String("level-dir"))
					if err != nil {
						return fmt.Errorf("failed to initialize services: %w", err)
					}

					runHTTPServer(gameService, sessionManager, serverOptions{
						host:        cmd.String("host"),
						port:        int(cmd.Int("port")),
						ngrok:       cmd.Bool("ngrok"),
						ngrokAuth:   cmd.String("ngrok-auth"),
						ngrokDomain: cmd.String("ngrok-domain"),
					})
					return nil
				},
			},
			{
				Name:    "mcp",
				Aliases: []string{"stdio-mcp", "mcp-stdio"},
				Usage:   "Run MCP stdio server with internal HTTP server",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "level-dir", Value: getLevelDirDefault(), Usage: "Directory containing levels"},
					&cli.BoolFlag{Name: "debug", Usage: "Enable debug logging"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					setupLogging(cmd.Bool("debug"))
					log.Printf("Starting %s v%s (mode: mcp)", AppName, Version)

					gameService, _, err := initializeServices(cmd.String("level-dir"))
					if err != nil {
						return fmt.Errorf("failed to initialize services: %w", err)
					}

					runStdioMCPWithInternalServer(gameService)
					return nil
				},
			},
			{
				Name:  "play",
				Usage: "Play a level interactively in the terminal",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "level-dir", Value: getLevelDirDefault(), Usage: "Directory containing levels"},
					&cli.StringFlag{Name: "level", Value: "", Usage: "Level name to play (default level when empty)"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runPlay(cmd.String("level-dir"), cmd.String("level"))
				},
			},
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogging(debug bool) {
	if debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}
}

// serverOptions bundles the flags that shape the HTTP server run.
type serverOptions struct {
	host        string
	port        int
	ngrok       bool
	ngrokAuth   string
	ngrokDomain string
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled (via flag or environment), it also provisions a public tunnel.
func runHTTPServer(gameService service.GameService, sessionManager *session.Manager, opts serverOptions) {
	// Create WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()

	// Create API server
	apiServer := api.NewServer(gameService, hub)

	// Setup HTTP server address
	addr := fmt.Sprintf("%s:%d", opts.host, opts.port)

	// Create MCP client for /mcp endpoint
	baseURL := fmt.Sprintf("http://%s", addr)
	mcpClient := mcp.NewClient(baseURL)

	// Create main router that combines API and MCP
	mainRouter := http.NewServeMux()

	// Mount API server at root
	mainRouter.Handle("/", apiServer)

	// Always add MCP endpoint for HTTP server
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Setup graceful shutdown context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	// Start regular HTTP server
	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?session=<session_id>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Check if ngrok should be enabled (from flag or environment)
	ngrokShouldRun := opts.ngrok
	if !ngrokShouldRun {
		if envEnabled := os.Getenv("NGROK_ENABLED"); envEnabled == "true" || envEnabled == "1" {
			ngrokShouldRun = true
		}
	}

	// Start ngrok tunnel if enabled
	if ngrokShouldRun {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// Get auth token from flag or environment (support both naming conventions)
			authToken := opts.ngrokAuth
			if authToken == "" {
				authToken = os.Getenv("NGROK_AUTHTOKEN")
				if authToken == "" {
					authToken = os.Getenv("NGROK_AUTH_TOKEN")
				}
			}

			if authToken == "" {
				log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
				return
			}

			log.Println("Starting ngrok tunnel...")

			// Get domain from flag or environment
			domain := opts.ngrokDomain
			if domain == "" {
				domain = os.Getenv("NGROK_DOMAIN")
			}

			// Configure ngrok endpoint
			var tunnel ngrokConfig.Tunnel
			if domain != "" {
				tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
				log.Printf("Using custom ngrok domain: %s", domain)
			} else {
				tunnel = ngrokConfig.HTTPEndpoint()
			}

			// Start ngrok tunnel
			tun, err := ngrok.Listen(ctx,
				tunnel,
				ngrok.WithAuthtoken(authToken),
			)
			if err != nil {
				log.Printf("Failed to start ngrok tunnel: %v", err)
				return
			}
			defer func() {
				if err := tun.Close(); err != nil {
					log.Printf("Failed to close ngrok tunnel: %v", err)
				}
			}()

			ngrokURL := tun.URL()
			log.Printf("🚀 Ngrok tunnel established: %s", ngrokURL)
			log.Printf("  REST API (ngrok): %s/api", ngrokURL)
			log.Printf("  WebSocket (ngrok): %s/ws?session=<session_id>", ngrokURL)
			log.Printf("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

			// Serve HTTP through ngrok tunnel
			if err := http.Serve(tun, mainRouter); err != nil && err != http.ErrServerClosed {
				log.Printf("Ngrok server error: %v", err)
			}
			log.Println("Ngrok tunnel closed")
		}()
	}

	// Wait for shutdown signal
	sig := <-stop
	log.Printf("Received signal: %v. Shutting down...", sig)
	cancel()

	// Flush sessions to disk before the process exits
	if err := sessionManager.SaveAllSessions(); err != nil {
		log.Printf("Warning: Failed to save sessions on shutdown: %v", err)
	}

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	// Wait for all goroutines to finish
	wg.Wait()
	log.Println("Server stopped")
}

// initializeServices wires session/level managers and the game service.
// It also starts a background cleanup routine to prune stale sessions.
func initializeServices(levelDir string) (service.GameService, *session.Manager, error) {
	// Create level manager first (needed for persistence)
	levelManager, err := config.NewManager(levelDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create level manager: %w", err)
	}

	// Create session persistence
	sessionsDir := "sessions"
	persistence, err := session.NewFilePersistence(sessionsDir, levelManager)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session persistence: %w", err)
	}

	// Create session manager with persistence
	sessionManager := session.NewManagerWithPersistence(persistence)

	// Load persisted sessions on startup
	if err := sessionManager.LoadPersistedSessions(); err != nil {
		log.Printf("Warning: Failed to load persisted sessions: %v", err)
	}

	// Create game service
	gameService := service.NewGameService(sessionManager, levelManager)

	// Start session cleanup routine
	go sessionCleanupRoutine(sessionManager)

	// Start filesystem sync routine
	go filesystemSyncRoutine(sessionManager, persistence)

	return gameService, sessionManager, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been accessed
// within the provided retention window.
func sessionCleanupRoutine(manager *session.Manager) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		removed := manager.CleanupExpiredSessions(24 * time.Hour)
		if removed > 0 {
			log.Printf("Cleaned up %d expired sessions", removed)
		}
	}
}

// filesystemSyncRoutine periodically syncs in-memory sessions with filesystem state.
// It removes sessions from memory when their corresponding files are deleted.
func filesystemSyncRoutine(manager *session.Manager, persistence session.SessionPersistence) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if persistence == nil {
			continue
		}

		memorySessions := manager.List()

		// Check each memory session against filesystem
		pruned := 0
		for _, sess := range memorySessions {
			if !persistence.Exists(sess.ID) {
				// File deleted, remove from memory
				if err := manager.DeleteFromMemory(sess.ID); err == nil {
					pruned++
					log.Printf("Pruned session %s from memory (file deleted)", sess.ID)
				}
			}
		}

		if pruned > 0 {
			log.Printf("Filesystem sync: pruned %d orphaned sessions from memory", pruned)
		}
	}
}

// runStdioMCPWithInternalServer runs an MCP stdio server.
// It tries to reuse an external API at http://localhost:8080; if unavailable, it
// starts a minimal internal HTTP API bound to a random loopback port and targets that.
func runStdioMCPWithInternalServer(gameService service.GameService) {
	var baseURL string
	var httpServer *http.Server
	var listener net.Listener

	// First, try to connect to external API server at localhost:8080
	externalURL := "http://localhost:8080"
	log.Printf("Checking for external API server at %s...", externalURL)

	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/api")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		log.Printf("External API server found at %s, using it for MCP", externalURL)
		baseURL = externalURL
	} else {
		// No external server found, start internal one
		log.Printf("No external API server found, starting internal HTTP server")

		listener, err = net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			log.Fatalf("Failed to get available port: %v", err)
		}

		internalPort := listener.Addr().(*net.TCPAddr).Port
		internalAddr := fmt.Sprintf("127.0.0.1:%d", internalPort)

		log.Printf("Starting internal HTTP server on %s for MCP stdio", internalAddr)

		hub := websocket.NewHub()
		go hub.Run()

		apiServer := api.NewServer(gameService, hub)

		httpServer = &http.Server{
			Handler: apiServer,
		}

		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Printf("Internal HTTP server error: %v", err)
			}
		}()

		// Wait a moment for the server to be ready
		time.Sleep(100 * time.Millisecond)

		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	// Create MCP client pointing to the selected server
	mcpClient := mcp.NewClient(baseURL)

	if baseURL == externalURL {
		log.Println("MCP stdio server ready (using external HTTP server)")
	} else {
		log.Println("MCP stdio server ready (using internal HTTP server)")
	}

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		log.Fatalf("MCP stdio server error: %v", err)
	}
}

// runPlay drives an interactive terminal game: wasd to move, r to restart,
// q to quit. Input is line-buffered, so each command needs Enter.
func runPlay(levelDir, levelName string) error {
	level, err := loadPlayLevel(levelDir, levelName)
	if err != nil {
		return err
	}

	eng, err := engine.NewEngine(level)
	if err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	directions := map[rune]string{
		'w': "up",
		'a': "left",
		's': "down",
		'd': "right",
	}

	for {
		// Clear screen and redraw
		fmt.Print("\033[H\033[2J")
		fmt.Println(eng.Game().Board().Render())
		fmt.Printf("Level: %s | Goals left: %d\n", level.Name, eng.GetGoalsRemaining())

		if eng.IsSolved() {
			fmt.Println("Solved! Press r to play again or q to quit.")
		} else {
			fmt.Println("Move: w/a/s/d, restart: r, quit: q")
		}

		ch, _, err := reader.ReadRune()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		switch ch {
		case 'q':
			return nil
		case 'r':
			eng.Reset()
		default:
			if dir, ok := directions[ch]; ok && !eng.IsSolved() {
				eng.Move(dir)
			}
		}
	}
}

// loadPlayLevel resolves the level to play: a named level from the level
// directory, the directory's default, or the built-in classic puzzle when no
// level directory exists.
func loadPlayLevel(levelDir, levelName string) (*engine.LevelConfig, error) {
	levelManager, err := config.NewManager(levelDir)
	if err != nil {
		if levelName != "" {
			return nil, fmt.Errorf("level directory %s unavailable: %w", levelDir, err)
		}
		log.Printf("Level directory %s unavailable, using built-in level", levelDir)
		return engine.DefaultLevelConfig(), nil
	}

	if levelName == "" {
		return levelManager.GetDefault(), nil
	}
	return levelManager.LoadLevel(levelName)
}
