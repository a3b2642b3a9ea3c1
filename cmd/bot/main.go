package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/An1ketGupta/TradeAni-Bot/internal/chain"
	"github.com/An1ketGupta/TradeAni-Bot/internal/config"
	"github.com/An1ketGupta/TradeAni-Bot/internal/dexscreener"
	"github.com/An1ketGupta/TradeAni-Bot/internal/executor"
	"github.com/An1ketGupta/TradeAni-Bot/internal/jupiter"
	"github.com/An1ketGupta/TradeAni-Bot/internal/portfolio"
	"github.com/An1ketGupta/TradeAni-Bot/internal/session"
	"github.com/An1ketGupta/TradeAni-Bot/internal/telegram"
	"github.com/An1ketGupta/TradeAni-Bot/internal/telemetry"
	"github.com/An1ketGupta/TradeAni-Bot/internal/wallet"
)

func main() {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	telemetry.Start()
	defer telemetry.Stop()

	// Ctrl-C / SIGTERM handling
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runWithTokenWait(ctx)
}

func runWithTokenWait(ctx context.Context) {
	configPath := config.DefaultPath

	for {
		select {
		case <-ctx.Done():
			telemetry.Infof("Shutting down...")
			return
		default:
			cfg, err := config.Load(configPath)
			if err != nil {
				log.Printf("Config load error: %v", err)
				time.Sleep(5 * time.Second)
				continue
			}

			if cfg.TELEGRAM_TOKEN == "" {
				log.Println("⏳ Waiting for Telegram token...")
				log.Println("📝 Please add TELEGRAM_TOKEN to config.yml")
				log.Printf("📁 Config location: %s\n", configPath)

				if waitForToken(ctx, configPath) {
					continue // Retry loading
				}
				return // Context cancelled
			}

			if err := cfg.Validate(); err != nil {
				log.Printf("❌ Config invalid: %v", err)
				time.Sleep(5 * time.Second)
				continue
			}

			telemetry.EnableDebug(cfg.DEBUG)
			telemetry.Infof("✅ Telegram token found, starting bot...")

			ctrl, err := buildController(cfg, configPath)
			if err != nil {
				log.Printf("❌ Controller init failed: %v", err)
				log.Println("⏳ Retrying in 10 seconds...")
				time.Sleep(10 * time.Second)
				continue
			}

			if err := ctrl.Start(ctx); err != nil {
				log.Printf("Controller error: %v", err)

				if isTokenError(err) {
					log.Println("❌ Token appears invalid, please check and update config.yml")
					cfg.TELEGRAM_TOKEN = "" // Clear invalid token
					_ = config.Save(configPath, cfg)
					continue
				}

				time.Sleep(5 * time.Second)
				continue
			}

			return // Normal exit
		}
	}
}

func buildController(cfg *config.Config, configPath string) (*telegram.Controller, error) {
	rpcClient := chain.NewClient(cfg.RPC_URL)
	jup := jupiter.NewClient(cfg.JUPITER_BASE_URL, cfg.JUPITER_API_KEY, cfg.SLIPPAGE_BPS)
	screener := dexscreener.NewClient(cfg.DEXSCREENER_BASE_URL)

	return telegram.NewController(cfg, configPath, telegram.Deps{
		Registry: wallet.NewRegistry(),
		Sessions: session.NewManager(),
		Chain:    rpcClient,
		Jupiter:  jup,
		Executor: executor.New(jup),
		Lister:   portfolio.NewLister(rpcClient, screener),
	})
}

// waitForToken monitors config file for changes
func waitForToken(ctx context.Context, configPath string) bool {
	initialInfo, err := os.Stat(configPath)
	if err != nil {
		// Config doesn't exist, create it
		cfg := config.Default()
		_ = config.Save(configPath, cfg)
		initialInfo, _ = os.Stat(configPath)
	}

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return false // Shutdown requested
		case <-ticker.C:
			currentInfo, err := os.Stat(configPath)
			if err != nil {
				continue
			}

			if currentInfo.ModTime().After(initialInfo.ModTime()) {
				telemetry.Infof("📝 Config file changed, checking for token...")
				return true
			}

			if os.Getenv("TELEGRAM_TOKEN") != "" {
				telemetry.Infof("📝 Token found in environment variable")
				return true
			}
		}
	}
}

// isTokenError checks if error is related to invalid token
func isTokenError(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "401") ||
		strings.Contains(errStr, "Unauthorized") ||
		strings.Contains(errStr, "Invalid token") ||
		strings.Contains(errStr, "telegram init")
}
