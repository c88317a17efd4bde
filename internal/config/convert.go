package config

import (
	"github.com/chaz8081/padfeed/internal/controller"
	"github.com/chaz8081/padfeed/internal/inject"
	"github.com/chaz8081/padfeed/internal/source"
	"github.com/chaz8081/padfeed/internal/window"
)

// SourceConfig returns the chat-completion client settings using apiKey.
func (c *Config) SourceConfig(apiKey string) source.Config {
	return source.Config{
		BaseURL:     c.Source.BaseURL,
		APIKey:      apiKey,
		Model:       c.Source.Model,
		Prompt:      c.Source.Prompt,
		Temperature: c.Source.Temperature,
		MaxTokens:   c.Source.MaxTokens,
		Timeout:     c.Source.Timeout,
	}
}

func (c *Config) InjectOptions() inject.Options {
	return inject.Options{
		PropagateDelay: c.Clipboard.PropagateDelay,
		PasteDelay:     c.Clipboard.PasteDelay,
		PasteModifier:  c.Clipboard.PasteModifier,
	}
}

func (c *Config) ActivatorOptions() window.ActivatorOptions {
	return window.ActivatorOptions{
		Attempts:    c.Window.Attempts,
		RetryDelay:  c.Window.RetryDelay,
		SettleDelay: c.Window.SettleDelay,
	}
}

func (c *Config) ControllerOptions() controller.Options {
	breaks := c.Delivery.LineBreaks
	if breaks == 0 {
		breaks = -1 // controller treats zero as "use the default"
	}
	return controller.Options{
		Tick:           c.Tick,
		SettleDelay:    c.Delivery.SettleDelay,
		LineBreaks:     breaks,
		LineBreakDelay: c.Delivery.LineBreakDelay,
	}
}

// Settings returns the values a running controller can pick up without a
// restart.
func (c *Config) Settings() controller.Settings {
	return controller.Settings{
		Interval: c.Interval,
		Titles:   append([]string(nil), c.Window.Titles...),
	}
}
