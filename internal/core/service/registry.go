package service

import (
	"fmt"
	"sort"

	"wavebot/internal/core/domain"
	"wavebot/internal/core/port"

	"github.com/rs/zerolog/log"
)

type CommandRegistry struct {
	commands map[string]port.Command
}

func (c *CommandRegistry) Register(handler port.Command) {
	if c.commands == nil {
		c.commands = make(map[string]port.Command)
	}

	log.Info().Str("handler", handler.GetCommand()).Msg("adding command handler to registry")
	c.commands[handler.GetCommand()] = handler
}

func (c *CommandRegistry) Get(command string) (port.Command, error) {
	handler, ok := c.commands[command]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCommand, command)
	}

	return handler, nil
}

func (c *CommandRegistry) ListCommands() []string {
	keys := make([]string, 0, len(c.commands))

	for k := range c.commands {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
