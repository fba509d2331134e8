// Package discord provides the event handler for managing Discord events.
package discord

import (
	"sync"

	"github.com/PancyStudios/PancyCalendarGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// EventHandler manages event loading and registration
type EventHandler struct {
	client *ExtendedClient
	events []interface{}
	mu     sync.RWMutex
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(client *ExtendedClient) *EventHandler {
	return &EventHandler{
		client: client,
		events: make([]interface{}, 0),
	}
}

// LoadEvents reports how many event handlers were registered
func (eh *EventHandler) LoadEvents() error {
	logger.System("Iniciando carga de eventos...", "EventHandler")

	eh.mu.RLock()
	count := len(eh.events)
	eh.mu.RUnlock()

	if count == 0 {
		logger.Warn("No hay eventos registrados", "EventHandler")
	}

	logger.System("Carga finalizada.", "EventHandler")
	return nil
}

// RegisterEvent adds an event handler to the Discord session.
// discordgo matches handlers by their unnamed func type.
func (eh *EventHandler) RegisterEvent(handler interface{}) {
	eh.client.Session.AddHandler(handler)
	eh.mu.Lock()
	eh.events = append(eh.events, handler)
	eh.mu.Unlock()
	logger.Debug("Evento registrado", "EventHandler")
}

// Count returns the number of registered handlers
func (eh *EventHandler) Count() int {
	eh.mu.RLock()
	defer eh.mu.RUnlock()
	return len(eh.events)
}

// ReadyHandler is called when the bot is ready
type ReadyHandler func(s *discordgo.Session, r *discordgo.Ready)

// ScheduledEventCreateHandler is called when a guild scheduled event is created
type ScheduledEventCreateHandler func(s *discordgo.Session, e *discordgo.GuildScheduledEventCreate)

// ScheduledEventUpdateHandler is called when a guild scheduled event is updated
type ScheduledEventUpdateHandler func(s *discordgo.Session, e *discordgo.GuildScheduledEventUpdate)

// ScheduledEventDeleteHandler is called when a guild scheduled event is deleted
type ScheduledEventDeleteHandler func(s *discordgo.Session, e *discordgo.GuildScheduledEventDelete)

// OnReady registers a ready event handler
func (eh *EventHandler) OnReady(handler ReadyHandler) {
	eh.RegisterEvent((func(*discordgo.Session, *discordgo.Ready))(handler))
	logger.Debug("Evento 'Ready' registrado", "EventHandler")
}

// OnScheduledEventCreate registers a scheduled event create handler
func (eh *EventHandler) OnScheduledEventCreate(handler ScheduledEventCreateHandler) {
	eh.RegisterEvent((func(*discordgo.Session, *discordgo.GuildScheduledEventCreate))(handler))
	logger.Debug("Evento 'GuildScheduledEventCreate' registrado", "EventHandler")
}

// OnScheduledEventUpdate registers a scheduled event update handler
func (eh *EventHandler) OnScheduledEventUpdate(handler ScheduledEventUpdateHandler) {
	eh.RegisterEvent((func(*discordgo.Session, *discordgo.GuildScheduledEventUpdate))(handler))
	logger.Debug("Evento 'GuildScheduledEventUpdate' registrado", "EventHandler")
}

// OnScheduledEventDelete registers a scheduled event delete handler
func (eh *EventHandler) OnScheduledEventDelete(handler ScheduledEventDeleteHandler) {
	eh.RegisterEvent((func(*discordgo.Session, *discordgo.GuildScheduledEventDelete))(handler))
	logger.Debug("Evento 'GuildScheduledEventDelete' registrado", "EventHandler")
}
