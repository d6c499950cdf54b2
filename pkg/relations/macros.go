package relations

import "github.com/ritzau/vt-designer/pkg/model"

// MacroCommand describes a command code a macro may contain.
type MacroCommand struct {
	Code       uint8
	Name       string
	MinVersion model.VtVersion
}

// MacroCommands lists the commands allowed in macros, in menu order.
var MacroCommands = []MacroCommand{
	{0xA0, "Hide/Show Object command", model.Version2},
	{0xA1, "Enable/Disable Object command", model.Version2},
	{0xA2, "Select Input Object command", model.Version2},
	{0x92, "ESC command", model.Version2},
	{0xA3, "Control Audio Signal command", model.Version2},
	{0xA4, "Set Audio Volume command", model.Version2},
	{0xA5, "Change Child Location command", model.Version2},
	{0xB4, "Change Child Position command", model.Version2},
	{0xA6, "Change Size command", model.Version2},
	{0xA7, "Change Background Colour command", model.Version2},
	{0xA8, "Change Numeric Value command", model.Version2},
	{0xB3, "Change String Value command", model.Version2},
	{0xA9, "Change End Point command", model.Version2},
	{0xAA, "Change Font Attributes command", model.Version2},
	{0xAB, "Change Line Attributes command", model.Version2},
	{0xAC, "Change Fill Attributes command", model.Version2},
	{0xAD, "Change Active Mask command", model.Version2},
	{0xAE, "Change Soft Key Mask command", model.Version2},
	{0xAF, "Change Attribute command", model.Version2},
	{0xB0, "Change priority command", model.Version2},
	{0xB1, "Change List item command", model.Version2},
	{0xBD, "Lock/Unlock Mask command", model.Version4},
	{0xBE, "Execute Macro command", model.Version4},
	{0xB5, "Change Object Label command", model.Version4},
	{0xB6, "Change Polygon Point command", model.Version4},
	{0xB7, "Change Polygon Scale command", model.Version4},
	{0xB8, "Graphics Context command", model.Version4},
	{0xBA, "Select Colour Map or Palette command", model.Version4},
	{0xBC, "Execute Extended Macro command", model.Version5},
	{0x90, "Select Active Working Set command", model.Version6},
}

// LookupMacroCommand finds a command by code.
func LookupMacroCommand(code uint8) (MacroCommand, bool) {
	for _, c := range MacroCommands {
		if c.Code == code {
			return c, true
		}
	}
	return MacroCommand{}, false
}

// MacroCommandAllowed reports whether code is a known command available at version v.
func MacroCommandAllowed(code uint8, v model.VtVersion) bool {
	c, ok := LookupMacroCommand(code)
	return ok && v >= c.MinVersion
}
