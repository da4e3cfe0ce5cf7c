package config

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
)

var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*$`)

type (
	Config struct {
		Notes
		Import
		Media
		Report
		Log
	}

	Notes struct {
		Folder        string        // Target Notes folder; empty means the default folder
		ScriptTimeout time.Duration // Upper bound for a single osascript run
		StoreDBPath   string        // NoteStore.sqlite location; auto-detected on macOS if empty
	}
	Import struct {
		Limit       int // 0 = no limit
		DryRun      bool
		EmbedScheme string // URL scheme of inline attachment embeds
	}
	Media struct {
		PhotosDir string // Overrides <export>/photos
		VideosDir string // Overrides <export>/videos
	}
	Report struct {
		Dir string // Where JSON run reports are written; empty disables them
	}
	Log struct {
		Verbose bool
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("notes_folder", "")
	v.SetDefault("notes_script_timeout", DefaultScriptTimeout)
	v.SetDefault("notes_store_db_path", "")
	v.SetDefault("import_limit", 0)
	v.SetDefault("import_dry_run", false)
	v.SetDefault("embed_scheme", DefaultEmbedScheme)
	v.SetDefault("photos_dir", "")
	v.SetDefault("videos_dir", "")
	v.SetDefault("report_dir", "")
	v.SetDefault("verbose", false)

	return &Config{
		Notes: Notes{
			Folder:        v.GetString("NOTES_FOLDER"),
			ScriptTimeout: v.GetDuration("NOTES_SCRIPT_TIMEOUT"),
			StoreDBPath:   v.GetString("NOTES_STORE_DB_PATH"),
		},
		Import: Import{
			Limit:       v.GetInt("IMPORT_LIMIT"),
			DryRun:      v.GetBool("IMPORT_DRY_RUN"),
			EmbedScheme: v.GetString("EMBED_SCHEME"),
		},
		Media: Media{
			PhotosDir: v.GetString("PHOTOS_DIR"),
			VideosDir: v.GetString("VIDEOS_DIR"),
		},
		Report: Report{
			Dir: v.GetString("REPORT_DIR"),
		},
		Log: Log{
			Verbose: v.GetBool("VERBOSE"),
		},
	}
}

// Validate checks values that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	if err := c.Notes.Validate(); err != nil {
		return err
	}
	return c.Import.Validate()
}

func (n *Notes) Validate() error {
	return validation.ValidateStruct(n,
		validation.Field(&n.ScriptTimeout, validation.Required, validation.Min(time.Second)),
	)
}

func (i *Import) Validate() error {
	return validation.ValidateStruct(i,
		validation.Field(&i.Limit, validation.Min(0)),
		validation.Field(&i.EmbedScheme, validation.Required, validation.Match(schemePattern)),
	)
}
