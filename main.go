package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"wavebot/internal/adapters/discord"
	"wavebot/internal/adapters/guildconfig"
	"wavebot/internal/core/cache"
	"wavebot/internal/core/domain/commands"
	"wavebot/internal/core/pagination"
	"wavebot/internal/core/service"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func main() {
	log.Info().Msg("starting wavebot...")

	viper.AddConfigPath(".")
	viper.SetConfigType("toml")

	log.Info().Msg("reading config file...")
	err := viper.ReadInConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("could not read config file")
	}

	var logLevel zerolog.Level

	switch viper.GetString("bot.log_level") {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	token := viper.GetString("discord.bot_token")

	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing discord session")
	}

	dg.Identify.Intents = discordgo.IntentsAllWithoutPrivileged |
		discordgo.IntentsGuildMembers | discordgo.IntentMessageContent

	// The cache needs gateway events applied in arrival order, so handlers
	// must run on the dispatch goroutine instead of one goroutine per event.
	dg.SyncEvents = true

	s := discord.NewSender(dg)

	entities := cache.New()

	bucketConfigs, err := service.LoadBucketConfigs()
	if err != nil {
		log.Panic().Err(err).Msg("invalid bucket configuration")
	}
	buckets := service.NewBucketRegistry(bucketConfigs)

	guildConfig, err := guildconfig.NewMemoryFromConfig()
	if err != nil {
		log.Panic().Err(err).Msg("invalid authority configuration")
	}

	authorizer := service.NewAuthorizer(entities, guildConfig)

	sessionTimeout, err := time.ParseDuration(viper.GetString("session.timeout"))
	if err != nil {
		log.Panic().Err(err).Msg("invalid timeout for sessions in config")
	}

	handlerTimeout, err := time.ParseDuration(viper.GetString("handler.timeout"))
	if err != nil {
		log.Panic().Err(err).Msg("invalid timeout for handler in config")
	}

	prefix := viper.GetString("bot.command_prefix")
	if prefix == "" {
		prefix = "!"
	}

	sessions := pagination.NewManager()

	commandRegistry := &service.CommandRegistry{}
	commandRegistry.Register(commands.NewPingHandler(s, "ping"))
	commandRegistry.Register(commands.NewRollHandler(s, "roll"))
	commandRegistry.Register(commands.NewAuthoritiesHandler(s, guildConfig, "authorities"))
	commandRegistry.Register(commands.NewStatsHandler(s, entities, "stats"))
	commandRegistry.Register(commands.NewServerHandler(s, entities, sessions, "server", sessionTimeout))
	commandRegistry.Register(commands.NewHelpHandler(s, commandRegistry, sessions, "help", prefix, sessionTimeout))

	router := service.NewRouter(commandRegistry, authorizer, buckets, s, prefix, handlerTimeout)

	gateway := discord.NewGateway(ctx, entities, router, sessions)
	gateway.Register(dg)

	if err := dg.Open(); err != nil {
		log.Panic().Err(err).Msg("failed opening discord gateway connection")
	}
	defer dg.Close()

	log.Info().Msg("bot listening")
	<-ctx.Done()

	log.Info().Msg("shutting down, waiting for sessions to close")
	sessions.Wait()
}
