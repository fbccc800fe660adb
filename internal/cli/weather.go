package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/questlog/internal/keyring"
	"github.com/julianstephens/questlog/internal/weather"
)

type WeatherCmd struct {
	Show  WeatherShowCmd  `cmd:"" help:"Show the weather at a coordinate." default:"withargs"`
	Token WeatherTokenCmd `cmd:"" help:"Manage the weather API token."`
}

type WeatherShowCmd struct {
	Lat float64 `help:"Latitude." required:""`
	Lon float64 `help:"Longitude." required:""`
}

func (c *WeatherShowCmd) ReadOnly() bool { return true }

func (c *WeatherShowCmd) Run(ctx *Context) error {
	w, err := ctx.Weather.Fetch(context.Background(), c.Lat, c.Lon)
	if err != nil {
		return err
	}
	ctx.println(weather.BadgeText(w))
	ctx.printf("Conditions: %s\n", weather.Describe(w.WeatherCode))
	if w.ApparentTemperature != nil {
		ctx.printf("Feels like: %.0f°C\n", *w.ApparentTemperature)
	}
	if w.Humidity != nil {
		ctx.printf("Humidity:   %.0f%%\n", *w.Humidity)
	}
	return nil
}

type WeatherTokenCmd struct {
	Set    WeatherTokenSetCmd    `cmd:"" help:"Store the API token in the OS keyring."`
	Delete WeatherTokenDeleteCmd `cmd:"" help:"Remove the API token from the OS keyring."`
}

type WeatherTokenSetCmd struct {
	Token string `arg:"" help:"API token."`
}

func (c *WeatherTokenSetCmd) ReadOnly() bool { return true }

func (c *WeatherTokenSetCmd) Run(ctx *Context) error {
	if err := keyring.SetToken(c.Token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	ctx.Weather.Token = strings.TrimSpace(c.Token)
	ctx.println("✓ Weather API token stored in the OS keyring.")
	return nil
}

type WeatherTokenDeleteCmd struct{}

func (c *WeatherTokenDeleteCmd) ReadOnly() bool { return true }

func (c *WeatherTokenDeleteCmd) Run(ctx *Context) error {
	if err := keyring.DeleteToken(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			ctx.println("No weather API token stored.")
			return nil
		}
		return fmt.Errorf("failed to delete token: %w", err)
	}
	ctx.Weather.Token = ""
	ctx.println("✓ Weather API token removed.")
	return nil
}
