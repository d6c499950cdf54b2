package relations

import (
	"slices"

	"github.com/ritzau/vt-designer/pkg/model"
)

var inputFieldEvents = []model.Event{
	model.OnEnable,
	model.OnDisable,
	model.OnInputFieldSelection,
	model.OnInputFieldDeselection,
	model.OnESC,
	model.OnChangeBackgroundColour,
	model.OnChangeValue,
	model.OnEntryOfValue,
	model.OnEntryOfNewValue,
	model.OnChangeAttribute,
	model.OnChangeSize,
}

var outputFieldEvents = []model.Event{
	model.OnChangeBackgroundColour,
	model.OnChangeValue,
	model.OnChangeAttribute,
	model.OnChangeSize,
}

var valueGraphicEvents = []model.Event{
	model.OnChangeValue,
	model.OnChangeAttribute,
	model.OnChangeSize,
}

var shapeEvents = []model.Event{
	model.OnChangeSize,
	model.OnChangeAttribute,
}

var events = map[model.ObjectType][]model.Event{
	model.WorkingSet: {
		model.OnActivate,
		model.OnDeactivate,
		model.OnChangeActiveMask,
		model.OnChangeBackgroundColour,
		model.OnChangeChildLocation,
		model.OnChangeChildPosition,
	},
	model.DataMask: {
		model.OnShow,
		model.OnHide,
		model.OnChangeBackgroundColour,
		model.OnChangeChildLocation,
		model.OnChangeChildPosition,
		model.OnChangeSoftKeyMask,
		model.OnChangeAttribute,
		model.OnPointingEventPress,
		model.OnPointingEventRelease,
	},
	model.AlarmMask: {
		model.OnShow,
		model.OnHide,
		model.OnChangeBackgroundColour,
		model.OnChangeChildLocation,
		model.OnChangeChildPosition,
		model.OnChangePriority,
		model.OnChangeSoftKeyMask,
		model.OnChangeAttribute,
	},
	model.Container: {
		model.OnShow,
		model.OnHide,
		model.OnChangeChildLocation,
		model.OnChangeChildPosition,
		model.OnChangeSize,
	},
	model.SoftKeyMask: {
		model.OnShow,
		model.OnHide,
		model.OnChangeBackgroundColour,
		model.OnChangeAttribute,
	},
	model.Key: {
		model.OnKeyPress,
		model.OnKeyRelease,
		model.OnChangeBackgroundColour,
		model.OnChangeChildLocation,
		model.OnChangeChildPosition,
		model.OnChangeAttribute,
		model.OnInputFieldSelection,
		model.OnInputFieldDeselection,
	},
	model.Button: {
		model.OnEnable,
		model.OnDisable,
		model.OnInputFieldSelection,
		model.OnInputFieldDeselection,
		model.OnKeyPress,
		model.OnKeyRelease,
		model.OnChangeBackgroundColour,
		model.OnChangeSize,
		model.OnChangeChildLocation,
		model.OnChangeChildPosition,
		model.OnChangeAttribute,
	},
	model.InputBoolean: inputFieldEvents,
	model.InputString:  inputFieldEvents,
	model.InputNumber:  inputFieldEvents,
	model.InputList: {
		model.OnEnable,
		model.OnDisable,
		model.OnInputFieldSelection,
		model.OnInputFieldDeselection,
		model.OnESC,
		model.OnChangeValue,
		model.OnEntryOfValue,
		model.OnEntryOfNewValue,
		model.OnChangeAttribute,
		model.OnChangeSize,
	},
	model.OutputString:         outputFieldEvents,
	model.OutputNumber:         outputFieldEvents,
	model.OutputList:           valueGraphicEvents,
	model.OutputLine:           {model.OnChangeEndPoint, model.OnChangeAttribute, model.OnChangeSize},
	model.OutputRectangle:      shapeEvents,
	model.OutputEllipse:        shapeEvents,
	model.OutputPolygon:        shapeEvents,
	model.OutputMeter:          valueGraphicEvents,
	model.OutputLinearBarGraph: valueGraphicEvents,
	model.OutputArchedBarGraph: valueGraphicEvents,
	model.PictureGraphic:       {model.OnChangeAttribute},
	model.NumberVariable:       {model.OnChangeValue},
	model.StringVariable:       {model.OnChangeValue},
	model.FontAttributes:       {model.OnChangeFontAttributes, model.OnChangeAttribute},
	model.LineAttributes:       {model.OnChangeLineAttributes, model.OnChangeAttribute},
	model.FillAttributes:       {model.OnChangeFillAttributes, model.OnChangeAttribute},
	model.InputAttributes:      {model.OnChangeValue},
	model.ObjectPointer:        {model.OnChangeValue},
	model.GraphicsContext:      {model.OnChangeAttribute, model.OnChangeBackgroundColour},
	model.KeyGroup:             {model.OnChangeAttribute},
	model.WindowMask: {
		model.OnShow,
		model.OnHide,
		model.OnChangeBackgroundColour,
		model.OnChangeChildLocation,
		model.OnChangeChildPosition,
		model.OnChangeAttribute,
		model.OnPointingEventPress,
		model.OnPointingEventRelease,
	},
	model.ExternalObjectDefinition: {model.OnChangeAttribute},
	model.ExternalReferenceName:    {model.OnChangeAttribute},
	model.ExternalObjectPointer:    {model.OnChangeValue},
	model.Animation: {
		model.OnEnable,
		model.OnDisable,
		model.OnChangeValue,
		model.OnChangeAttribute,
		model.OnChangeSize,
	},
	model.ScaledGraphic: {model.OnChangeAttribute, model.OnChangeValue},
}

// PossibleEvents lists the events an object of type t can raise.
func PossibleEvents(t model.ObjectType) []model.Event {
	return slices.Clone(events[t])
}

// CanRaise reports whether objects of type t raise event e.
func CanRaise(t model.ObjectType, e model.Event) bool {
	return slices.Contains(events[t], e)
}
