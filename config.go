package schemagrid

var (
	// DefaultGridDefaults provides the default grid settings:
	// cells are edited on click and saved on blur,
	// rows are selected with checkboxes and can be deleted.
	DefaultGridDefaults = GridDefaults{
		CellEditMode:  "click",
		BlurToSave:    true,
		SelectRowMode: "checkbox",
		DeleteRow:     true,
	}

	// DefaultSelectionField is the record field storing the selection
	// state if the ViewConfig does not configure a fieldToUpdate.
	DefaultSelectionField = "picked"

	// DefaultCoercer is used by the package level coercion functions
	// and by a TableField without Coercer.
	DefaultCoercer = NewCoercer(MomentDateFormat)
)
