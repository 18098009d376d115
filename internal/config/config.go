package config

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// SiteConfig describes the static-site content tree the generator writes into.
type SiteConfig struct {
	PostsDir     string `mapstructure:"posts_dir"`
	ImagesDir    string `mapstructure:"images_dir"`
	ImageBaseURL string `mapstructure:"image_base_url"` // URL prefix used in markdown image references
	FrontMatter  string `mapstructure:"front_matter"`   // "yaml" or "toml"
	Draft        bool   `mapstructure:"draft"`
}

// TextGenConfig controls the remote text-generation collaborator.
type TextGenConfig struct {
	APIKey      string `mapstructure:"api_key"` // env: OPENROUTER_API_KEY
	BaseURL     string `mapstructure:"base_url"`
	Model       string `mapstructure:"model"`
	MaxAttempts int    `mapstructure:"max_attempts"`
	Backoff     string `mapstructure:"backoff"` // duration string, e.g. "2s"
	Timeout     string `mapstructure:"timeout"`
	Strict      bool   `mapstructure:"strict"` // propagate malformed responses instead of using a placeholder
}

// ImageConfig controls cover image acquisition.
type ImageConfig struct {
	Mode        string   `mapstructure:"mode"` // "url" (GET prompt-encoded URL) or "api" (POST JSON)
	BaseURL     string   `mapstructure:"base_url"`
	APIKey      string   `mapstructure:"api_key"` // env: IMAGE_API_KEY
	Model       string   `mapstructure:"model"`
	Format      string   `mapstructure:"format"` // "png" or "webp"
	WebPQuality int      `mapstructure:"webp_quality"`
	Timeout     string   `mapstructure:"timeout"`
	Prompts     []string `mapstructure:"prompts"`
}

// RedisConfig holds redis connection settings for the post history store.
// An empty Addr disables history entirely.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// GenerateConfig controls batch and scheduled generation.
type GenerateConfig struct {
	Count    int    `mapstructure:"count"`
	Interval string `mapstructure:"interval"` // delay between posts, e.g. "30s"
}

// Config is the top-level configuration structure.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Site     SiteConfig     `mapstructure:"site"`
	TextGen  TextGenConfig  `mapstructure:"textgen"`
	Image    ImageConfig    `mapstructure:"image"`
	Topics   []string       `mapstructure:"topics"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Generate GenerateConfig `mapstructure:"generate"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Site.PostsDir == "" {
		c.Site.PostsDir = "content/posts"
	}
	if c.Site.ImagesDir == "" {
		c.Site.ImagesDir = "static/images/gallery"
	}
	if c.Site.ImageBaseURL == "" {
		c.Site.ImageBaseURL = "/images/gallery"
	}
	if c.Site.FrontMatter == "" {
		c.Site.FrontMatter = "yaml"
	}
	if c.TextGen.BaseURL == "" {
		c.TextGen.BaseURL = "https://openrouter.ai/api/v1"
	}
	if c.TextGen.Model == "" {
		c.TextGen.Model = "gpt-4o-mini"
	}
	if c.TextGen.MaxAttempts == 0 {
		c.TextGen.MaxAttempts = 3
	}
	if c.TextGen.Backoff == "" {
		c.TextGen.Backoff = "2s"
	}
	if c.TextGen.Timeout == "" {
		c.TextGen.Timeout = "120s"
	}
	if c.Image.Mode == "" {
		c.Image.Mode = "url"
	}
	if c.Image.BaseURL == "" {
		c.Image.BaseURL = "https://image.pollinations.ai"
	}
	if c.Image.Format == "" {
		c.Image.Format = "png"
	}
	if c.Image.WebPQuality <= 0 || c.Image.WebPQuality > 100 {
		c.Image.WebPQuality = 85
	}
	if c.Image.Timeout == "" {
		c.Image.Timeout = "60s"
	}
	if len(c.Image.Prompts) == 0 {
		c.Image.Prompts = DefaultImagePrompts()
	}
	if len(c.Topics) == 0 {
		c.Topics = DefaultTopics()
	}
	if c.Generate.Count == 0 {
		c.Generate.Count = 1
	}
	if c.Generate.Interval == "" {
		c.Generate.Interval = "30s"
	}
}

// DefaultTopics is the built-in topic catalog used when the config lists none.
func DefaultTopics() []string {
	return []string{
		"Обзор новой архитектуры нейросети",
		"Урок по использованию Python для ИИ",
		"Мастер-класс: генерация изображений нейросетями",
		"Будущее высоких технологий",
		"Нейросети в медицине",
		"ИИ и кибербезопасность",
		"Как работает обучение с подкреплением",
		"Тенденции машинного обучения 2025",
	}
}

// DefaultImagePrompts is the built-in cover prompt catalog.
func DefaultImagePrompts() []string {
	return []string{
		"futuristic neural network visualization, neon cyberpunk style, high tech background",
		"ai brain made of circuits, glowing blue and purple, cyber style",
		"machine learning concept art, futuristic hologram, sci-fi aesthetics",
	}
}
