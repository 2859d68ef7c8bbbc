package commands

import (
	"fmt"
	"strings"

	"locust/internal/ai"
	"locust/internal/antispam"
	aimodule "locust/internal/commands/modules/ai"
	"locust/internal/commands/modules/filter"
	"locust/internal/commands/modules/help"
	"locust/internal/commands/modules/leveling"
	"locust/internal/commands/modules/lovecalc"
	"locust/internal/commands/modules/marketplace"
	"locust/internal/commands/modules/moderation"
	"locust/internal/commands/modules/ping"
	"locust/internal/commands/modules/purge"
	raidmodule "locust/internal/commands/modules/raid"
	"locust/internal/commands/modules/roblox"
	starboardmodule "locust/internal/commands/modules/starboard"
	"locust/internal/commands/modules/tickets"
	timemodule "locust/internal/commands/modules/time"
	"locust/internal/commands/modules/urban"
	"locust/internal/commands/types"
	internalConfig "locust/internal/config"
	"locust/internal/database"
	filtersvc "locust/internal/filter"
	levelingsvc "locust/internal/leveling"
	"locust/internal/raid"
	starboardsvc "locust/internal/starboard"

	"github.com/bwmarrin/discordgo"
)

// ModuleHandler manages command modules and routes interactions.
//
// Component and modal interactions are routed by custom ID prefix: any
// module implementing types.ComponentHandler claims the IDs starting
// with its prefix. Event handlers (message create, member add,
// reactions) reach the shared services through the getters below.
type ModuleHandler struct {
	commands   map[string]*types.Command
	modules    map[string]types.CommandModule
	components map[string]types.ComponentHandler
	config     *internalConfig.Config
	db         *database.DB
	deps       *types.Dependencies

	aiClient     *ai.Client
	raidTracker  *raid.Tracker
	antiSpamSvc  *antispam.Service
	filterSvc    *filtersvc.Service
	levelingSvc  *levelingsvc.Service
	starboardSvc *starboardsvc.Service
}

// NewModuleHandler creates a new module-based command handler
func NewModuleHandler(cfg *internalConfig.Config) *ModuleHandler {
	db, err := database.NewDB(cfg.GetDatabasePath())
	if err != nil {
		cfg.Logger.Warn("Warning: Failed to initialize database: %v", err)
	}

	aiClient := ai.NewClient(cfg)

	h := &ModuleHandler{
		commands:   make(map[string]*types.Command),
		modules:    make(map[string]types.CommandModule),
		components: make(map[string]types.ComponentHandler),
		config:     cfg,
		db:         db,
		deps: &types.Dependencies{
			Config:  cfg,
			DB:      db,
			AI:      aiClient,
			Session: nil, // Set later
		},
		aiClient:     aiClient,
		raidTracker:  raid.NewTracker(cfg),
		antiSpamSvc:  antispam.NewService(),
		filterSvc:    filtersvc.NewService(cfg, db),
		levelingSvc:  levelingsvc.NewService(cfg, db),
		starboardSvc: starboardsvc.NewService(cfg, db),
	}

	h.registerModules()

	return h
}

// registerModules registers all command modules
func (h *ModuleHandler) registerModules() {
	modules := []struct {
		name   string
		module types.CommandModule
	}{
		{"ping", ping.New(h.deps)},
		{"time", timemodule.New()},
		{"help", help.New(h.deps)},
		{"moderation", moderation.New(h.deps)},
		{"purge", purge.New(h.deps)},
		{"filter", filter.New(h.deps)},
		{"raid", raidmodule.New(h.deps, h.raidTracker)},
		{"leveling", leveling.New(h.deps)},
		{"tickets", tickets.New(h.deps)},
		{"marketplace", marketplace.New(h.deps)},
		{"starboard", starboardmodule.New(h.deps)},
		{"ai", aimodule.New(h.deps)},
		{"urban", urban.New(h.deps)},
		{"roblox", roblox.New(h.deps)},
		{"lovecalc", lovecalc.New(h.deps)},
	}

	for _, m := range modules {
		m.module.Register(h.commands, h.deps)
		h.modules[m.name] = m.module

		if ch, ok := m.module.(types.ComponentHandler); ok {
			h.components[ch.ComponentPrefix()] = ch
		}
	}
}

// GetModule returns a module by name with type assertion.
func (h *ModuleHandler) GetModule(name string) types.CommandModule {
	return h.modules[name]
}

// GetDB returns the database instance
func (h *ModuleHandler) GetDB() *database.DB {
	return h.db
}

// GetAI returns the AI chat client
func (h *ModuleHandler) GetAI() *ai.Client {
	return h.aiClient
}

// GetRaidTracker returns the join-rate tracker
func (h *ModuleHandler) GetRaidTracker() *raid.Tracker {
	return h.raidTracker
}

// GetAntiSpamService returns the spam detector
func (h *ModuleHandler) GetAntiSpamService() *antispam.Service {
	return h.antiSpamSvc
}

// GetFilterService returns the word filter service
func (h *ModuleHandler) GetFilterService() *filtersvc.Service {
	return h.filterSvc
}

// GetLevelingService returns the XP service
func (h *ModuleHandler) GetLevelingService() *levelingsvc.Service {
	return h.levelingSvc
}

// GetStarboardService returns the starboard service
func (h *ModuleHandler) GetStarboardService() *starboardsvc.Service {
	return h.starboardSvc
}

// RegisterCommands registers all slash commands with Discord
func (h *ModuleHandler) RegisterCommands(s *discordgo.Session) error {
	existingCommands, err := s.ApplicationCommands(s.State.User.ID, "")
	if err != nil {
		h.config.Logger.Warn("Error fetching existing commands: %v", err)
		return err
	}

	existingByName := make(map[string]*discordgo.ApplicationCommand)
	for _, ec := range existingCommands {
		existingByName[ec.Name] = ec
	}

	for _, c := range h.commands {
		if c.Development {
			// Unregister development commands if they exist
			for _, existingCmd := range existingCommands {
				if existingCmd.Name == c.ApplicationCommand.Name {
					err := s.ApplicationCommandDelete(s.State.User.ID, "", existingCmd.ID)
					if err != nil {
						h.config.Logger.Warn("Error deleting command %s: %v", c.ApplicationCommand.Name, err)
					} else {
						h.config.Logger.Infof("Unregistered command: %s", c.ApplicationCommand.Name)
					}
				}
			}
			continue
		}

		if existing := existingByName[c.ApplicationCommand.Name]; existing != nil {
			cmd, err := s.ApplicationCommandEdit(s.State.User.ID, "", existing.ID, c.ApplicationCommand)
			if err != nil {
				return err
			}
			c.ApplicationCommand.ID = cmd.ID
			h.config.Logger.Infof("Updated command: %s", cmd.Name)
		} else {
			cmd, err := s.ApplicationCommandCreate(s.State.User.ID, "", c.ApplicationCommand)
			if err != nil {
				return err
			}
			c.ApplicationCommand.ID = cmd.ID
			h.config.Logger.Infof("Registered command: %s", cmd.Name)
		}
	}

	return nil
}

// HandleInteraction routes slash command interactions to appropriate handlers
func (h *ModuleHandler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.ApplicationCommandData().Name == "" {
		return
	}

	commandName := i.ApplicationCommandData().Name
	if cmd, exists := h.commands[commandName]; exists {
		cmd.HandlerFunc(s, i)
	}
}

// HandleComponentInteraction routes component interactions by custom ID prefix
func (h *ModuleHandler) HandleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	prefix, _, _ := strings.Cut(i.MessageComponentData().CustomID, ":")
	if handler, ok := h.components[prefix]; ok {
		handler.HandleComponent(s, i)
		return
	}
	h.config.Logger.Warn("Component interaction received with no registered handler", "custom_id", i.MessageComponentData().CustomID)
}

// HandleModalSubmit routes modal submissions by custom ID prefix
func (h *ModuleHandler) HandleModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	prefix, _, _ := strings.Cut(i.ModalSubmitData().CustomID, ":")
	if handler, ok := h.components[prefix]; ok {
		handler.HandleModalSubmit(s, i)
		return
	}
	h.config.Logger.Warn("Modal submit received with no registered handler", "custom_id", i.ModalSubmitData().CustomID)
}

// UnregisterCommands removes all registered commands
func (h *ModuleHandler) UnregisterCommands(s *discordgo.Session) {
	existingCommands, err := s.ApplicationCommands(s.State.User.ID, "")
	if err != nil {
		h.config.Logger.Warn("Error fetching existing commands: %v", err)
		return
	}

	for _, existingCmd := range existingCommands {
		if _, exists := h.commands[existingCmd.Name]; exists {
			err := s.ApplicationCommandDelete(s.State.User.ID, "", existingCmd.ID)
			if err != nil {
				h.config.Logger.Warn("Error deleting command %s: %v", existingCmd.Name, err)
			} else {
				h.config.Logger.Infof("Unregistered command: %s", existingCmd.Name)
			}
		}
	}
}

// InitializeModuleServices hydrates services with the Discord session.
// Called after the Discord session is established.
func (h *ModuleHandler) InitializeModuleServices(s *discordgo.Session) error {
	h.deps.Session = s

	for _, module := range h.modules {
		if service := module.Service(); service != nil {
			if err := service.HydrateServiceDiscordSession(s); err != nil {
				return fmt.Errorf("failed to hydrate service with Discord session: %w", err)
			}
		}
	}

	return nil
}

// RegisterModuleSchedulers registers recurring tasks from all modules with the scheduler.
// Called after services are initialized.
func (h *ModuleHandler) RegisterModuleSchedulers(scheduler interface {
	RegisterNewMinuteFunc(fn func() error)
	RegisterNewHourFunc(fn func() error)
}) {
	for _, module := range h.modules {
		if service := module.Service(); service != nil {
			if minuteFuncs := service.MinuteFuncs(); minuteFuncs != nil {
				for _, fn := range minuteFuncs {
					scheduler.RegisterNewMinuteFunc(fn)
				}
			}

			if hourFuncs := service.HourFuncs(); hourFuncs != nil {
				for _, fn := range hourFuncs {
					scheduler.RegisterNewHourFunc(fn)
				}
			}
		}
	}
}
