package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/akagifreeez/trade-values/internal/config"
	"github.com/akagifreeez/trade-values/internal/discordbot"
)

func main() {
	// Setup zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.DiscordBotToken == "" {
		log.Fatal().Msg("DISCORD_BOT_TOKEN environment variable is required")
	}
	if cfg.DiscordClientID == "" {
		log.Fatal().Msg("DISCORD_CLIENT_ID environment variable is required")
	}

	// Create a new Discord session using the provided bot token.
	dg, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating Discord session")
	}

	// Initialize bot handler
	botHandler := discordbot.NewBotHandler(cfg.APIBaseURL)
	botHandler.RegisterHandlers(dg)

	// Open a websocket connection to Discord and begin listening.
	err = dg.Open()
	if err != nil {
		log.Fatal().Err(err).Msg("error opening connection")
	}

	// Register commands
	log.Info().Msg("Registering commands...")
	_, err = botHandler.RegisterCommands(dg, cfg.DiscordClientID, cfg.DiscordGuildID)
	if err != nil {
		log.Fatal().Err(err).Msg("error registering commands")
	}

	log.Info().Str("api", cfg.APIBaseURL).Msg("Bot is now running. Press CTRL-C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	log.Info().Msg("Gracefully shutting down.")

	// Cleanly close down the Discord session.
	dg.Close()
}
