package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds every tunable of the pipeline. Values come from a yaml file
// overridden by environment variables; the defaults are the observed policy
// of the course (units 9-24, 20 drills per unit, 28800 character budget).
type Config struct {
	Data struct {
		Drills       string `yaml:"drills" env:"DATA_DRILLS" env-default:"data/drills.json"`
		AudioMapping string `yaml:"audio_mapping" env:"DATA_AUDIO_MAPPING" env-default:"data/reverse_audio_mapping.json"`
		LessonSource string `yaml:"lesson_source" env:"DATA_LESSON_SOURCE" env-default:"js/fsi-main.js"`
		Translations string `yaml:"translations" env:"DATA_TRANSLATIONS" env-default:"data/translations.yaml"`
	} `yaml:"data"`

	Manifest struct {
		Drills    string `yaml:"drills" env:"MANIFEST_DRILLS" env-default:"scripts/drill_manifest.json"`
		Dialogues string `yaml:"dialogues" env:"MANIFEST_DIALOGUES" env-default:"scripts/dialogue_manifest.json"`
	} `yaml:"manifest"`

	Checkpoint struct {
		Dir string `yaml:"dir" env:"CHECKPOINT_DIR" env-default:"scripts"`
	} `yaml:"checkpoint"`

	Audio struct {
		Dir       string `yaml:"dir" env:"AUDIO_DIR" env-default:"audio"`
		DrillsDir string `yaml:"drills_dir" env:"AUDIO_DRILLS_DIR" env-default:"audio/drills"`
		FFmpeg    string `yaml:"ffmpeg" env:"AUDIO_FFMPEG" env-default:"ffmpeg"`
	} `yaml:"audio"`

	Drills struct {
		UnitStart int `yaml:"unit_start" env:"DRILLS_UNIT_START" env-default:"9"`
		UnitEnd   int `yaml:"unit_end" env:"DRILLS_UNIT_END" env-default:"24"`
		PerUnit   int `yaml:"per_unit" env:"DRILLS_PER_UNIT" env-default:"20"`
	} `yaml:"drills"`

	BudgetChars int `yaml:"budget_chars" env:"BUDGET_CHARS" env-default:"28800"`

	TTS struct {
		Provider        string  `yaml:"provider" env:"TTS_PROVIDER" env-default:"elevenlabs"`
		APIKey          string  `yaml:"api_key" env:"ELEVENLABS_API_KEY"`
		Model           string  `yaml:"model" env:"TTS_MODEL" env-default:"eleven_multilingual_v2"`
		Stability       float64 `yaml:"stability" env:"TTS_STABILITY" env-default:"0.5"`
		SimilarityBoost float64 `yaml:"similarity_boost" env:"TTS_SIMILARITY_BOOST" env-default:"0.75"`
		MaxRetries      int     `yaml:"max_retries" env:"TTS_MAX_RETRIES" env-default:"3"`
		SaveEvery       int     `yaml:"save_every" env:"TTS_SAVE_EVERY" env-default:"5"`
	} `yaml:"tts"`

	Voices struct {
		FrenchMale    string `yaml:"french_male" env:"VOICE_FRENCH_MALE" env-default:"necQJzI1X0vLpdnJteap"`
		FrenchFemale  string `yaml:"french_female" env:"VOICE_FRENCH_FEMALE" env-default:"m5U7XCsc8v988k2RJAqN"`
		BritishMale   string `yaml:"british_male" env:"VOICE_BRITISH_MALE" env-default:"N2lVS1w4EtoT3dr4eOWO"`
		BritishFemale string `yaml:"british_female" env:"VOICE_BRITISH_FEMALE" env-default:"EXAVITQu4vr4xnSDxMaL"`
		Speakers      string `yaml:"speakers" env:"VOICE_SPEAKERS" env-default:"data/speakers.yaml"`
	} `yaml:"voices"`
}

// Load reads configuration from the yaml file at path, overridden by
// environment variables. A missing file is fine; ENV + defaults apply.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Drills.UnitStart > c.Drills.UnitEnd {
		return fmt.Errorf("drill unit range %d-%d is empty", c.Drills.UnitStart, c.Drills.UnitEnd)
	}
	if c.Drills.PerUnit <= 0 {
		return fmt.Errorf("drills per unit must be positive, got %d", c.Drills.PerUnit)
	}
	switch c.TTS.Provider {
	case "elevenlabs", "gcp":
	default:
		return fmt.Errorf("unknown tts provider %q", c.TTS.Provider)
	}
	return nil
}
