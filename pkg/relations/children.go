package relations

import "github.com/ritzau/vt-designer/pkg/model"

// ChildTypes returns the types parent may hold as renderable children at version v.
func ChildTypes(parent model.ObjectType, v model.VtVersion) []model.ObjectType {
	switch parent {
	case model.WorkingSet:
		return workingSetChildren(v)
	case model.DataMask, model.Container:
		// containers accept exactly what a data mask accepts
		return dataMaskChildren(v)
	case model.AlarmMask:
		return alarmMaskChildren(v)
	case model.SoftKeyMask:
		return softKeyMaskChildren(v)
	case model.Key, model.Button:
		return keyChildren(v)
	case model.InputList:
		return inputListChildren(v)
	case model.OutputList, model.WindowMask:
		return windowMaskChildren(v)
	case model.AuxiliaryFunctionType1, model.AuxiliaryInputType1:
		return auxType1Children()
	case model.AuxiliaryFunctionType2, model.AuxiliaryInputType2:
		return auxType2Children(v)
	case model.KeyGroup:
		if v >= model.Version4 {
			return []model.ObjectType{model.Key}
		}
		return nil
	case model.Animation:
		return animationChildren(v)
	}
	// ObjectLabelReferenceList holds labels, not objects.
	return nil
}

func workingSetChildren(v model.VtVersion) []model.ObjectType {
	types := []model.ObjectType{
		model.OutputString,
		model.OutputNumber,
		model.OutputLine,
		model.OutputRectangle,
		model.OutputEllipse,
		model.OutputPolygon,
		model.PictureGraphic,
	}
	if v >= model.Version4 {
		types = append(types,
			model.OutputList,
			model.OutputMeter,
			model.OutputLinearBarGraph,
			model.OutputArchedBarGraph,
			model.GraphicsContext,
			model.ObjectPointer,
		)
	}
	if v >= model.Version6 {
		types = append(types, model.ScaledGraphic)
	}
	return types
}

func dataMaskChildren(v model.VtVersion) []model.ObjectType {
	types := []model.ObjectType{
		model.Container,
		model.Button,
		model.InputBoolean,
		model.InputString,
		model.InputNumber,
		model.InputList,
		model.OutputString,
		model.OutputNumber,
		model.OutputLine,
		model.OutputRectangle,
		model.OutputEllipse,
		model.OutputPolygon,
		model.OutputMeter,
		model.OutputLinearBarGraph,
		model.OutputArchedBarGraph,
		model.PictureGraphic,
		model.ObjectPointer,
		model.WorkingSet,
	}
	return appendMaskExtensions(types, v)
}

func alarmMaskChildren(v model.VtVersion) []model.ObjectType {
	types := []model.ObjectType{
		model.Container,
		model.OutputString,
		model.OutputNumber,
		model.OutputLine,
		model.OutputRectangle,
		model.OutputEllipse,
		model.OutputPolygon,
		model.OutputMeter,
		model.OutputLinearBarGraph,
		model.OutputArchedBarGraph,
		model.PictureGraphic,
		model.ObjectPointer,
		model.WorkingSet,
	}
	return appendMaskExtensions(types, v)
}

func appendMaskExtensions(types []model.ObjectType, v model.VtVersion) []model.ObjectType {
	if v >= model.Version4 {
		types = append(types, model.OutputList, model.GraphicsContext)
	}
	if v >= model.Version5 {
		types = append(types, model.Animation, model.ExternalObjectPointer)
	}
	if v >= model.Version6 {
		types = append(types, model.ScaledGraphic)
	}
	return types
}

func softKeyMaskChildren(v model.VtVersion) []model.ObjectType {
	types := []model.ObjectType{model.Key, model.ObjectPointer}
	if v >= model.Version5 {
		types = append(types, model.ExternalObjectPointer)
	}
	return types
}

func keyChildren(v model.VtVersion) []model.ObjectType {
	types := []model.ObjectType{
		model.Container,
		model.OutputString,
		model.OutputNumber,
		model.OutputLine,
		model.OutputRectangle,
		model.OutputEllipse,
		model.OutputPolygon,
		model.PictureGraphic,
		model.ObjectPointer,
	}
	if v >= model.Version4 {
		types = append(types,
			model.WorkingSet,
			model.OutputList,
			model.OutputMeter,
			model.OutputLinearBarGraph,
			model.OutputArchedBarGraph,
			model.GraphicsContext,
		)
	}
	if v >= model.Version5 {
		types = append(types, model.Animation, model.ExternalObjectPointer)
	}
	if v >= model.Version6 {
		types = append(types, model.ScaledGraphic)
	}
	return types
}

func inputListChildren(v model.VtVersion) []model.ObjectType {
	types := []model.ObjectType{
		model.OutputString,
		model.OutputNumber,
		model.PictureGraphic,
	}
	if v >= model.Version4 {
		types = append(types,
			model.WorkingSet,
			model.Container,
			model.OutputList,
			model.OutputLine,
			model.OutputRectangle,
			model.OutputEllipse,
			model.OutputPolygon,
			model.OutputMeter,
			model.OutputLinearBarGraph,
			model.OutputArchedBarGraph,
			model.GraphicsContext,
			model.ObjectPointer,
		)
	}
	if v >= model.Version5 {
		types = append(types, model.ExternalObjectPointer)
	}
	if v >= model.Version6 {
		types = append(types, model.ScaledGraphic)
	}
	return types
}

func windowMaskChildren(v model.VtVersion) []model.ObjectType {
	if v < model.Version4 {
		return nil
	}
	types := []model.ObjectType{
		model.WorkingSet,
		model.Container,
		model.Button,
		model.InputBoolean,
		model.InputString,
		model.InputNumber,
		model.InputList,
		model.OutputString,
		model.OutputNumber,
		model.OutputList,
		model.OutputLine,
		model.OutputRectangle,
		model.OutputEllipse,
		model.OutputPolygon,
		model.OutputMeter,
		model.OutputLinearBarGraph,
		model.OutputArchedBarGraph,
		model.GraphicsContext,
		model.PictureGraphic,
		model.ObjectPointer,
	}
	if v >= model.Version5 {
		types = append(types, model.Animation, model.ExternalObjectPointer)
	}
	if v >= model.Version6 {
		types = append(types, model.ScaledGraphic)
	}
	return types
}

func auxType1Children() []model.ObjectType {
	return []model.ObjectType{
		model.OutputString,
		model.OutputNumber,
		model.OutputLine,
		model.OutputRectangle,
		model.OutputEllipse,
		model.OutputPolygon,
		model.PictureGraphic,
	}
}

func auxType2Children(v model.VtVersion) []model.ObjectType {
	types := []model.ObjectType{
		model.Container,
		model.OutputString,
		model.OutputNumber,
		model.OutputLine,
		model.OutputRectangle,
		model.OutputEllipse,
		model.OutputPolygon,
		model.OutputMeter,
		model.OutputLinearBarGraph,
		model.OutputArchedBarGraph,
		model.PictureGraphic,
		model.ObjectPointer,
	}
	if v >= model.Version4 {
		types = append(types, model.OutputList, model.GraphicsContext)
	}
	if v >= model.Version6 {
		types = append(types, model.ScaledGraphic)
	}
	return types
}

func animationChildren(v model.VtVersion) []model.ObjectType {
	if v < model.Version5 {
		return nil
	}
	types := []model.ObjectType{
		model.Container,
		model.OutputString,
		model.OutputNumber,
		model.OutputList,
		model.OutputLine,
		model.OutputRectangle,
		model.OutputEllipse,
		model.OutputPolygon,
		model.OutputMeter,
		model.OutputLinearBarGraph,
		model.OutputArchedBarGraph,
		model.GraphicsContext,
		model.PictureGraphic,
		model.ObjectPointer,
	}
	if v >= model.Version6 {
		types = append(types, model.ScaledGraphic)
	}
	return types
}
