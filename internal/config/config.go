package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/OpenTraceLab/CourtCoach/pkg/board"
	"github.com/OpenTraceLab/CourtCoach/pkg/court"
	"github.com/OpenTraceLab/CourtCoach/pkg/trainer"
)

// EnvPrefix prefixes environment overrides, e.g. COURTCOACH_TRAINER_SPEED.
const EnvPrefix = "COURTCOACH"

// ConfigName is the base name searched for when no file is given.
const ConfigName = "courtcoach"

func setDefaults() {
	viper.SetDefault("logLevel", "info")

	viper.SetDefault("trainer.homeSide", "left")
	viper.SetDefault("trainer.mode", "random")
	viper.SetDefault("trainer.speed", trainer.DefaultSpeed)
	viper.SetDefault("trainer.rounds", 0)
	viper.SetDefault("trainer.oppHand", "right")
	viper.SetDefault("trainer.zones", []string{"front", "mid", "back"})

	viper.SetDefault("board.lineWidth", board.DefaultLineWidth)
	viper.SetDefault("board.dash", "solid")
	viper.SetDefault("board.courtType", "doubles")
	viper.SetDefault("board.homeSide", "left")

	viper.SetDefault("window.width", 1280)
	viper.SetDefault("window.height", 800)
}

// Load sets default values, applies environment overrides and reads the config
// file. An explicit file must exist; otherwise courtcoach.{json,yaml,toml} is
// looked up in the working directory and the user config directory, and a
// missing file is not an error.
func Load(file string) error {
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if file != "" {
		viper.SetConfigFile(file)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
		return nil
	}

	viper.SetConfigName(ConfigName)
	viper.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(dir, ConfigName))
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// Used returns the config file that was read, or "".
func Used() string {
	return viper.ConfigFileUsed()
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// Trainer builds sequencer options from the trainer.* keys.
func Trainer() (trainer.Options, error) {
	opts := trainer.DefaultOptions()

	side, ok := court.ParseHomeSide(strings.ToLower(viper.GetString("trainer.homeSide")))
	if !ok {
		return opts, fmt.Errorf("trainer.homeSide: unknown side %q", viper.GetString("trainer.homeSide"))
	}
	opts.Side = side

	mode, ok := trainer.ParseMode(strings.ToLower(viper.GetString("trainer.mode")))
	if !ok {
		return opts, fmt.Errorf("trainer.mode: unknown mode %q", viper.GetString("trainer.mode"))
	}
	opts.Mode = mode

	hand, ok := trainer.ParseDominantHand(strings.ToLower(viper.GetString("trainer.oppHand")))
	if !ok {
		return opts, fmt.Errorf("trainer.oppHand: unknown hand %q", viper.GetString("trainer.oppHand"))
	}
	opts.OppHand = hand

	var zones trainer.Zones
	for _, name := range viper.GetStringSlice("trainer.zones") {
		z, ok := trainer.ParseZone(strings.ToLower(name))
		if !ok {
			return opts, fmt.Errorf("trainer.zones: unknown zone %q", name)
		}
		if !zones.Enabled(z) {
			zones = zones.Toggle(z)
		}
	}
	opts.Zones = zones

	opts.Speed = min(max(viper.GetInt("trainer.speed"), trainer.MinSpeed), trainer.MaxSpeed)
	opts.RoundTarget = max(viper.GetInt("trainer.rounds"), 0)
	return opts, nil
}

// Board builds editor options from the board.* keys.
func Board() (board.Options, error) {
	opts := board.DefaultOptions()

	dash, ok := board.ParseDash(strings.ToLower(viper.GetString("board.dash")))
	if !ok {
		return opts, fmt.Errorf("board.dash: unknown style %q", viper.GetString("board.dash"))
	}
	opts.Dash = dash

	ct, ok := court.ParseCourtType(strings.ToLower(viper.GetString("board.courtType")))
	if !ok {
		return opts, fmt.Errorf("board.courtType: unknown court %q", viper.GetString("board.courtType"))
	}
	opts.CourtType = ct

	side, ok := court.ParseHomeSide(strings.ToLower(viper.GetString("board.homeSide")))
	if !ok {
		return opts, fmt.Errorf("board.homeSide: unknown side %q", viper.GetString("board.homeSide"))
	}
	opts.HomeSide = side

	opts.LineWidth = min(max(viper.GetFloat64("board.lineWidth"), board.MinLineWidth), board.MaxLineWidth)
	return opts, nil
}
