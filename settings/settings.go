// Package settings resolves labeleer's runtime settings.
//
// Every setting has a command-line flag and an environment variable with
// the LABELEER_ prefix; a flag given on the command line wins over the
// environment, which wins over the default:
//
//	--root      LABELEER_ROOT      project root searched for .env and label files
//	--api-url   LABELEER_API_URL   base URL of the Labeleer API
//	--verbose   LABELEER_VERBOSE   debug diagnostics on stderr
//	--no-color  LABELEER_NO_COLOR  plain output (NO_COLOR is honoured too)
//	--lang      LABELEER_LANG      language of labeleer's own messages
//
// Project credentials are deliberately absent: they come from the
// project's .env files or from prompts, never from here.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "LABELEER"

// DefaultAPIURL is the production API base.
const DefaultAPIURL = "https://labeleer.com/api"

// Flag names.
const (
	FlagRoot    = "root"
	FlagAPIURL  = "api-url"
	FlagVerbose = "verbose"
	FlagNoColor = "no-color"
	FlagLang    = "lang"
)

// Settings holds the resolved values.
type Settings struct {
	Root    string // absolute
	APIURL  string
	Verbose bool
	NoColor bool
	Lang    string // empty: detect from the locale environment
}

// AddFlags registers the settings flags on fs.
func AddFlags(fs *pflag.FlagSet) {
	fs.String(FlagRoot, ".", "Project root directory")
	fs.String(FlagAPIURL, DefaultAPIURL, "Labeleer API base URL")
	fs.BoolP(FlagVerbose, "v", false, "Print debug diagnostics")
	fs.Bool(FlagNoColor, false, "Disable colored output")
	fs.String(FlagLang, "", "Language for labeleer messages (default: from LANG)")
}

// Load resolves settings from fs and the environment.
func Load(fs *pflag.FlagSet) (Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(FlagRoot, ".")
	v.SetDefault(FlagAPIURL, DefaultAPIURL)

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return Settings{}, fmt.Errorf("binding flags: %w", err)
		}
	}

	s := Settings{
		Root:    v.GetString(FlagRoot),
		APIURL:  strings.TrimRight(strings.TrimSpace(v.GetString(FlagAPIURL)), "/"),
		Verbose: v.GetBool(FlagVerbose),
		NoColor: v.GetBool(FlagNoColor) || os.Getenv("NO_COLOR") != "",
		Lang:    strings.TrimSpace(v.GetString(FlagLang)),
	}

	if s.Root == "" {
		s.Root = "."
	}
	abs, err := filepath.Abs(s.Root)
	if err != nil {
		return Settings{}, fmt.Errorf("resolving root %s: %w", s.Root, err)
	}
	s.Root = abs

	if s.APIURL == "" {
		s.APIURL = DefaultAPIURL
	}
	if !strings.HasPrefix(s.APIURL, "http://") && !strings.HasPrefix(s.APIURL, "https://") {
		return Settings{}, fmt.Errorf("invalid API URL %q: must start with http:// or https://", s.APIURL)
	}

	return s, nil
}
