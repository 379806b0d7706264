// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package types

type RenderCardRequest struct {
	StyleId    string `json:"style_id"`
	Series     string `json:"series"`
	Season     int    `json:"season"`
	Episode    int    `json:"episode"`
	Title      string `json:"title"`
	SourcePath string `json:"source_path"`
	OutputPath string `json:"output_path,optional"`

	AbsoluteNumber  int    `json:"absolute_number,optional"`
	SeasonText      string `json:"season_text,optional"`
	EpisodeText     string `json:"episode_text,optional"`
	HideSeasonText  bool   `json:"hide_season_text,optional"`
	HideEpisodeText bool   `json:"hide_episode_text,optional"`

	FontColor            string  `json:"font_color,optional"`
	FontSize             float64 `json:"font_size,optional"`
	FontInterlineSpacing int     `json:"font_interline_spacing,optional"`
	FontVerticalShift    int     `json:"font_vertical_shift,optional"`
	EpisodeTextColor     string  `json:"episode_text_color,optional"`

	Blur      bool `json:"blur,optional"`
	Grayscale bool `json:"grayscale,optional"`

	Priority    int    `json:"priority,optional"`
	ScheduledAt string `json:"scheduled_at,optional"`
}

type RenderCardResponse struct {
	Id      string `json:"id"`
	Status  string `json:"status"`
	Style   string `json:"style"`
	Series  string `json:"series"`
	Season  int    `json:"season"`
	Episode int    `json:"episode"`
}

type GetCardRequest struct {
	Id string `path:"id"`
}

type CardEvent struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Details   string `json:"details,omitempty"`
}

type GetCardResponse struct {
	Id          string      `json:"id"`
	Series      string      `json:"series"`
	Season      int         `json:"season"`
	Episode     int         `json:"episode"`
	Title       string      `json:"title"`
	Style       string      `json:"style"`
	Status      string      `json:"status"`
	Attempts    int         `json:"attempts"`
	Error       string      `json:"error,omitempty"`
	SourcePath  string      `json:"source_path"`
	OutputPath  string      `json:"output_path,omitempty"`
	Fingerprint string      `json:"fingerprint,omitempty"`
	CreatedAt   string      `json:"created_at"`
	RenderedAt  string      `json:"rendered_at,omitempty"`
	Events      []CardEvent `json:"events"`
}

type ListCardsRequest struct {
	Status string `form:"status,optional"`
	Limit  int    `form:"limit,default=50"`
}

type CardSummary struct {
	Id        string `json:"id"`
	Series    string `json:"series"`
	Season    int    `json:"season"`
	Episode   int    `json:"episode"`
	Title     string `json:"title"`
	Style     string `json:"style"`
	Status    string `json:"status"`
	Attempts  int    `json:"attempts"`
	Error     string `json:"error,omitempty"`
	CreatedAt string `json:"created_at"`
}

type ListCardsResponse struct {
	Cards []CardSummary `json:"cards"`
	Count int           `json:"count"`
}

type StyleItem struct {
	Id                    string   `json:"id"`
	Name                  string   `json:"name"`
	Description           string   `json:"description,omitempty"`
	Creators              []string `json:"creators,omitempty"`
	SupportsCustomFonts   bool     `json:"supports_custom_fonts"`
	SupportsCustomSeasons bool     `json:"supports_custom_seasons"`
}

type ListStylesResponse struct {
	Styles []StyleItem `json:"styles"`
	Count  int         `json:"count"`
}

type GetStyleRequest struct {
	Id string `path:"id"`
}

type StyleFonts struct {
	Base   string `json:"base"`
	Infill string `json:"infill"`
	Gears  string `json:"gears"`
}

type StyleColors struct {
	Title             string `json:"title"`
	TitleInfill       string `json:"title_infill"`
	TitleGears        string `json:"title_gears"`
	EpisodeText       string `json:"episode_text"`
	EpisodeTextInfill string `json:"episode_text_infill"`
	EpisodeTextGears  string `json:"episode_text_gears"`
}

type StyleTitle struct {
	Case         string `json:"case"`
	MaxLineWidth int    `json:"max_line_width"`
	MaxLineCount int    `json:"max_line_count"`
	SplitStyle   string `json:"split_style"`
}

type GetStyleResponse struct {
	Id                    string      `json:"id"`
	Name                  string      `json:"name"`
	Description           string      `json:"description,omitempty"`
	Example               string      `json:"example,omitempty"`
	Creators              []string    `json:"creators,omitempty"`
	Source                string      `json:"source,omitempty"`
	SupportsCustomFonts   bool        `json:"supports_custom_fonts"`
	SupportsCustomSeasons bool        `json:"supports_custom_seasons"`
	Fonts                 StyleFonts  `json:"fonts"`
	Colors                StyleColors `json:"colors"`
	Title                 StyleTitle  `json:"title"`
	EpisodeTextFormat     string      `json:"episode_text_format"`
	FontWarnings          []string    `json:"font_warnings,omitempty"`
}

type PreviewStyleRequest struct {
	Id   string `path:"id"`
	Text string `form:"text,optional"`
}

type PreviewStyleResponse struct {
	Style  string `json:"style"`
	Image  string `json:"image"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type StatsResponse struct {
	Stats map[string]int `json:"stats"`
	Total int            `json:"total"`
}
