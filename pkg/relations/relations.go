// Package relations decides which object types may reference which, by role.
//
// The tables follow ISO 11783-6 and are gated by the VT version of the pool.
// Every function here is pure; nothing depends on a concrete object pool.
package relations

import (
	"slices"

	"github.com/ritzau/vt-designer/pkg/model"
)

// IsAllowed reports whether an object of type parent may reference an object of
// type candidate with the given role in a pool targeting version v.
func IsAllowed(v model.VtVersion, parent model.ObjectType, role model.Role, candidate model.ObjectType) bool {
	if !slices.Contains(RolesOf(parent), role) {
		return false
	}
	switch role {
	case model.RoleChild:
		return slices.Contains(ChildTypes(parent, v), candidate)
	case model.RolePointer:
		return IsRenderableType(v, candidate)
	case model.RoleMacro:
		return candidate == model.Macro
	case model.RoleVariable:
		return candidate == variableType(parent)
	case model.RoleTargetVariable:
		return candidate == model.NumberVariable
	case model.RoleFont:
		return candidate == model.FontAttributes
	case model.RoleLine:
		return candidate == model.LineAttributes
	case model.RoleFill:
		return candidate == model.FillAttributes
	case model.RoleFillPattern:
		return candidate == model.PictureGraphic
	case model.RoleInputAttributes:
		return candidate == model.InputAttributes ||
			(v >= model.Version4 && candidate == model.ExtendedInputAttributes)
	case model.RoleSoftKeyMask:
		return candidate == model.SoftKeyMask
	case model.RoleActiveMask:
		return candidate == model.DataMask || candidate == model.AlarmMask
	case model.RoleAuxDesignator:
		return candidate == model.AuxiliaryFunctionType2 || candidate == model.AuxiliaryInputType2
	}
	return false
}

// AllowedTargets lists, in type code order, every type parent may reference with role.
func AllowedTargets(v model.VtVersion, parent model.ObjectType, role model.Role) []model.ObjectType {
	var types []model.ObjectType
	for _, t := range model.AllTypes {
		if IsAllowed(v, parent, role, t) {
			types = append(types, t)
		}
	}
	return types
}

// RolesOf lists the reference roles an object type carries.
func RolesOf(t model.ObjectType) []model.Role {
	return roles[t]
}

// IsRenderableType reports whether t may appear as a child of some object at version v.
// These are the types an object pointer can point at.
func IsRenderableType(v model.VtVersion, t model.ObjectType) bool {
	for _, parent := range model.AllTypes {
		if slices.Contains(ChildTypes(parent, v), t) {
			return true
		}
	}
	return false
}

func variableType(parent model.ObjectType) model.ObjectType {
	switch parent {
	case model.InputString, model.OutputString:
		return model.StringVariable
	}
	return model.NumberVariable
}

var roles = map[model.ObjectType][]model.Role{
	model.WorkingSet:                      {model.RoleChild, model.RoleMacro, model.RoleActiveMask},
	model.DataMask:                        {model.RoleChild, model.RoleMacro, model.RoleSoftKeyMask},
	model.AlarmMask:                       {model.RoleChild, model.RoleMacro, model.RoleSoftKeyMask},
	model.Container:                       {model.RoleChild, model.RoleMacro},
	model.SoftKeyMask:                     {model.RoleChild, model.RoleMacro},
	model.Key:                             {model.RoleChild, model.RoleMacro},
	model.Button:                          {model.RoleChild, model.RoleMacro},
	model.InputBoolean:                    {model.RoleFont, model.RoleVariable, model.RoleMacro},
	model.InputString:                     {model.RoleFont, model.RoleInputAttributes, model.RoleVariable, model.RoleMacro},
	model.InputNumber:                     {model.RoleFont, model.RoleVariable, model.RoleMacro},
	model.InputList:                       {model.RoleChild, model.RoleVariable, model.RoleMacro},
	model.OutputString:                    {model.RoleFont, model.RoleVariable, model.RoleMacro},
	model.OutputNumber:                    {model.RoleFont, model.RoleVariable, model.RoleMacro},
	model.OutputLine:                      {model.RoleLine, model.RoleMacro},
	model.OutputRectangle:                 {model.RoleLine, model.RoleFill, model.RoleMacro},
	model.OutputEllipse:                   {model.RoleLine, model.RoleFill, model.RoleMacro},
	model.OutputPolygon:                   {model.RoleLine, model.RoleFill, model.RoleMacro},
	model.OutputMeter:                     {model.RoleVariable, model.RoleMacro},
	model.OutputLinearBarGraph:            {model.RoleVariable, model.RoleTargetVariable, model.RoleMacro},
	model.OutputArchedBarGraph:            {model.RoleVariable, model.RoleTargetVariable, model.RoleMacro},
	model.PictureGraphic:                  {model.RoleMacro},
	model.NumberVariable:                  {model.RoleMacro},
	model.StringVariable:                  {model.RoleMacro},
	model.FontAttributes:                  {model.RoleMacro},
	model.LineAttributes:                  {model.RoleMacro},
	model.FillAttributes:                  {model.RoleFillPattern, model.RoleMacro},
	model.InputAttributes:                 {model.RoleMacro},
	model.ObjectPointer:                   {model.RolePointer, model.RoleMacro},
	model.AuxiliaryFunctionType1:          {model.RoleChild},
	model.AuxiliaryInputType1:             {model.RoleChild},
	model.AuxiliaryFunctionType2:          {model.RoleChild},
	model.AuxiliaryInputType2:             {model.RoleChild},
	model.AuxiliaryControlDesignatorType2: {model.RoleAuxDesignator},
	model.WindowMask:                      {model.RoleChild, model.RoleMacro},
	model.KeyGroup:                        {model.RoleChild, model.RoleMacro},
	model.GraphicsContext:                 {model.RoleFont, model.RoleLine, model.RoleFill, model.RoleMacro},
	model.OutputList:                      {model.RoleChild, model.RoleVariable, model.RoleMacro},
	model.ExternalObjectDefinition:        {model.RoleMacro},
	model.ExternalReferenceName:           {model.RoleMacro},
	model.ExternalObjectPointer:           {model.RoleMacro},
	model.Animation:                       {model.RoleChild, model.RoleMacro},
	model.ObjectLabelReferenceList:        {model.RoleChild},
	model.ScaledGraphic:                   {model.RoleMacro},
}
