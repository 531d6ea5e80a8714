// Package tools defines the closed alias vocabulary the execution core
// exposes to nodes, and the strong types used to avoid confusing an alias
// with a fully-qualified remote tool name.
package tools

// Ident is a stable tool alias used throughout the core (e.g. "click",
// "screen_capture"). Aliases are resolved to a local function or a remote
// fully-qualified name by registry.Registry; nodes only ever see an Ident.
type Ident string

// RemoteName is a fully-qualified remote tool name (e.g.
// "vision_server.screen_capture") as understood by a RemoteClient.
type RemoteName string

// Fixed alias vocabulary. New aliases must not collide with these.
const (
	ScreenCapture     Ident = "screen_capture"
	OmniparserV2Parse Ident = "omniparser_v2_parse"
	ScreenshotDiff    Ident = "screenshot_diff"
	FocusWindow       Ident = "focus_window"
	UIATree           Ident = "uia_tree"
	UIAClick          Ident = "uia_click"
	UIASetText        Ident = "uia_set_text"
	Click             Ident = "click"
	DoubleClick       Ident = "double_click"
	RightClick        Ident = "right_click"
	Move              Ident = "move"
	Drag              Ident = "drag"
	Scroll            Ident = "scroll"
	TypeText          Ident = "type_text"
	Hotkey            Ident = "hotkey"
	KeyDown           Ident = "key_down"
	KeyUp             Ident = "key_up"
	Wait              Ident = "wait"
	Ping              Ident = "ping"
	TimeNowMs         Ident = "time_now_ms"
	ClipboardGet      Ident = "clipboard_get"
	ClipboardSet      Ident = "clipboard_set"
)

// ToolingConfig centralizes the alias every node refers to, so nodes never
// hardcode a tool name. Executor resolves each alias to a local function or
// a remote fully-qualified name; changing a mapping never requires a node
// rewrite, only a new ToolingConfig or registry.RemoteMap.
type ToolingConfig struct {
	ScreenCapture     Ident
	OmniparserV2Parse Ident
	ScreenshotDiff    Ident

	FocusWindow Ident
	UIATree     Ident
	UIAClick    Ident
	UIASetText  Ident

	Click       Ident
	DoubleClick Ident
	RightClick  Ident
	Move        Ident
	Drag        Ident
	Scroll      Ident

	TypeText Ident
	Hotkey   Ident
	KeyDown  Ident
	KeyUp    Ident

	Wait         Ident
	Ping         Ident
	TimeNowMs    Ident
	ClipboardGet Ident
	ClipboardSet Ident
}

// DefaultToolingConfig returns a ToolingConfig whose fields equal the fixed
// alias vocabulary's own names. Callers needing different aliases (e.g. a
// host that versions its tool names) can build their own ToolingConfig.
func DefaultToolingConfig() ToolingConfig {
	return ToolingConfig{
		ScreenCapture:     ScreenCapture,
		OmniparserV2Parse: OmniparserV2Parse,
		ScreenshotDiff:    ScreenshotDiff,

		FocusWindow: FocusWindow,
		UIATree:     UIATree,
		UIAClick:    UIAClick,
		UIASetText:  UIASetText,

		Click:       Click,
		DoubleClick: DoubleClick,
		RightClick:  RightClick,
		Move:        Move,
		Drag:        Drag,
		Scroll:      Scroll,

		TypeText: TypeText,
		Hotkey:   Hotkey,
		KeyDown:  KeyDown,
		KeyUp:    KeyUp,

		Wait:         Wait,
		Ping:         Ping,
		TimeNowMs:    TimeNowMs,
		ClipboardGet: ClipboardGet,
		ClipboardSet: ClipboardSet,
	}
}
