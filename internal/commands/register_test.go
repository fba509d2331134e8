package commands

import (
	"testing"

	"github.com/PancyStudios/PancyCalendarGo/pkg/discord"
)

func TestRegisterAll(t *testing.T) {
	client, err := discord.NewClient("test-token")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	RegisterAll(client)

	for _, name := range []string{"calendar", "sync"} {
		if _, ok := client.Commands.Get(name); !ok {
			t.Errorf("command %q not registered", name)
		}
	}
	if got := len(client.CommandHandler.GlobalCommands()); got != 2 {
		t.Errorf("GlobalCommands() length = %v, want %v", got, 2)
	}
}
