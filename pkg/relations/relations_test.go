package relations

import (
	"slices"
	"testing"

	"github.com/ritzau/vt-designer/pkg/model"
	"github.com/stretchr/testify/assert"
)

var versions = []model.VtVersion{model.Version3, model.Version4, model.Version5, model.Version6}

func TestContainerAndButtonNest(t *testing.T) {
	for _, v := range versions {
		assert.True(t, IsAllowed(v, model.Container, model.RoleChild, model.Button), v.String())
		assert.True(t, IsAllowed(v, model.Button, model.RoleChild, model.Container), v.String())
		assert.False(t, IsAllowed(v, model.Container, model.RoleChild, model.Key), v.String())
	}
}

func TestVersionGating(t *testing.T) {
	assert.False(t, IsAllowed(model.Version3, model.WorkingSet, model.RoleChild, model.ObjectPointer))
	assert.True(t, IsAllowed(model.Version4, model.WorkingSet, model.RoleChild, model.ObjectPointer))

	assert.Empty(t, ChildTypes(model.WindowMask, model.Version3))
	assert.NotEmpty(t, ChildTypes(model.WindowMask, model.Version4))

	assert.False(t, IsAllowed(model.Version5, model.DataMask, model.RoleChild, model.ScaledGraphic))
	assert.True(t, IsAllowed(model.Version6, model.DataMask, model.RoleChild, model.ScaledGraphic))

	assert.False(t, IsAllowed(model.Version3, model.InputString, model.RoleInputAttributes, model.ExtendedInputAttributes))
	assert.True(t, IsAllowed(model.Version4, model.InputString, model.RoleInputAttributes, model.ExtendedInputAttributes))
}

func TestAuxDesignatorIsNarrowerThanContainers(t *testing.T) {
	for _, v := range versions {
		targets := AllowedTargets(v, model.AuxiliaryControlDesignatorType2, model.RoleAuxDesignator)
		assert.Equal(t, []model.ObjectType{model.AuxiliaryFunctionType2, model.AuxiliaryInputType2}, targets)
		assert.Empty(t, AllowedTargets(v, model.AuxiliaryControlDesignatorType2, model.RoleChild))
		assert.False(t, IsAllowed(v, model.Container, model.RoleAuxDesignator, model.AuxiliaryFunctionType2))
	}
}

func TestPointerTargetsAreRenderable(t *testing.T) {
	targets := AllowedTargets(model.Version3, model.ObjectPointer, model.RolePointer)
	assert.Contains(t, targets, model.Container)
	assert.Contains(t, targets, model.Key)
	assert.NotContains(t, targets, model.FontAttributes)
	assert.NotContains(t, targets, model.Macro)
	assert.NotContains(t, targets, model.DataMask)
}

func TestVariableBindings(t *testing.T) {
	v := model.Version6
	assert.True(t, IsAllowed(v, model.OutputString, model.RoleVariable, model.StringVariable))
	assert.False(t, IsAllowed(v, model.OutputString, model.RoleVariable, model.NumberVariable))
	assert.True(t, IsAllowed(v, model.OutputNumber, model.RoleVariable, model.NumberVariable))
	assert.True(t, IsAllowed(v, model.OutputLinearBarGraph, model.RoleTargetVariable, model.NumberVariable))
	assert.False(t, IsAllowed(v, model.OutputMeter, model.RoleTargetVariable, model.NumberVariable))
}

func TestMacroRoleMatchesEvents(t *testing.T) {
	for _, typ := range model.AllTypes {
		hasMacroRole := slices.Contains(RolesOf(typ), model.RoleMacro)
		hasEvents := len(PossibleEvents(typ)) > 0
		assert.Equal(t, hasEvents, hasMacroRole, "%s: macro role and event list disagree", typ)
	}
}

func TestEverySupportedTypeHasRoles(t *testing.T) {
	for _, typ := range model.SupportedTypes() {
		if typ == model.Macro {
			assert.Empty(t, RolesOf(typ))
			continue
		}
		assert.NotEmpty(t, RolesOf(typ), typ.String())
	}
}

// Walks every (parent, role, candidate) triple so that no combination is left
// without a decision and the two query forms never disagree.
func TestLegalityIsExhaustive(t *testing.T) {
	for _, v := range versions {
		for _, parent := range model.AllTypes {
			for _, role := range model.AllRoles {
				targets := AllowedTargets(v, parent, role)
				declared := slices.Contains(RolesOf(parent), role)
				if !declared {
					assert.Empty(t, targets, "%s %s has targets for undeclared role %s", v, parent, role)
				}
				for _, candidate := range model.AllTypes {
					allowed := IsAllowed(v, parent, role, candidate)
					assert.Equal(t, slices.Contains(targets, candidate), allowed,
						"%s: %s -%s-> %s", v, parent, role, candidate)
				}
			}
		}
	}
}

func TestChildTablesGrowWithVersion(t *testing.T) {
	for _, parent := range model.AllTypes {
		for i := 1; i < len(versions); i++ {
			older := ChildTypes(parent, versions[i-1])
			newer := ChildTypes(parent, versions[i])
			for _, typ := range older {
				assert.Contains(t, newer, typ, "%s lost %s going to %s", parent, typ, versions[i])
			}
		}
	}
}

func TestMacroCommands(t *testing.T) {
	seen := map[uint8]bool{}
	for _, c := range MacroCommands {
		assert.False(t, seen[c.Code], "duplicate code %#x", c.Code)
		seen[c.Code] = true
	}

	assert.True(t, MacroCommandAllowed(0xA0, model.Version3))
	assert.False(t, MacroCommandAllowed(0xBE, model.Version3))
	assert.True(t, MacroCommandAllowed(0xBE, model.Version4))
	assert.False(t, MacroCommandAllowed(0x90, model.Version5))
	assert.True(t, MacroCommandAllowed(0x90, model.Version6))
	assert.False(t, MacroCommandAllowed(0x01, model.Version6))
}

func TestCanRaise(t *testing.T) {
	assert.True(t, CanRaise(model.Button, model.OnKeyPress))
	assert.False(t, CanRaise(model.OutputRectangle, model.OnKeyPress))
	assert.False(t, CanRaise(model.Macro, model.OnChangeValue))
}
