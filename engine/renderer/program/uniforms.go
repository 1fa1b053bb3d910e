package program

import (
	"github.com/coolmint859/prism/common"
	"github.com/coolmint859/prism/engine/renderer/shader"
)

// UniformStore is a program's uniform binding surface: it resolves external
// names through the capability table's alias map, writes into dirty-flagged
// value slots, and flushes changed values to the GPU once per frame while
// the program is active.
//
// All operations are synchronous and never suspend; within one frame, every
// SetValue that happens before Flush is visible to that Flush.
type UniformStore struct {
	owner *prog
}

func newUniformStore(p *prog) *UniformStore {
	return &UniformStore{owner: p}
}

// SetValue resolves alias to its canonical name and writes the value into
// the corresponding slot, marking it dirty. An unknown alias, an attribute
// name, or a value of the wrong type is recoverable caller misuse: the call
// logs at Warn and leaves every slot untouched, because a shared material
// legitimately probes the same names against many programs during best-fit
// experimentation.
//
// Parameters:
//   - alias: any accepted spelling of the uniform
//   - value: the typed value to store
//
// Returns:
//   - bool: true if a slot was written
func (s *UniformStore) SetValue(alias string, value shader.UniformValue) bool {
	canonical, ok := s.owner.table.Resolve(alias)
	if !ok {
		common.Logger().Warn("set of unknown uniform ignored",
			"program", s.owner.name, "alias", alias)
		return false
	}
	slot := s.owner.table.Slot(canonical)
	if slot == nil {
		common.Logger().Warn("set of attribute as uniform ignored",
			"program", s.owner.name, "name", canonical)
		return false
	}
	if slot.Type != value.Type {
		common.Logger().Warn("set of mistyped uniform ignored",
			"program", s.owner.name, "name", canonical,
			"declared", slot.Type.String(), "got", value.Type.String())
		return false
	}
	slot.Value = value
	slot.Dirty = true
	return true
}

// Flush pushes pending values to the GPU. It must only be called while the
// owning program is the active GPU program; flushing an inactive or unbuilt
// program is a usage error, reported as a returned UsageError and logged,
// with no uploads issued.
//
// Dirty non-sampler slots are uploaded with the type-appropriate call and
// cleared. Sampler slots are assigned sequential texture units on every
// flush in declaration order, so unit assignment stays stable across the
// draw call even when the texture reference is unchanged; the dirty flag
// only gates whether the unit→texture binding call is reissued.
//
// Returns:
//   - error: a *UsageError if the program is not the active program
func (s *UniformStore) Flush() error {
	p := s.owner
	if p.state != StateReady {
		err := &UsageError{Program: p.name, Op: "Flush", Reason: "program is " + p.state.String()}
		common.Logger().Warn("uniform flush ignored", "error", err)
		return err
	}
	if active := p.device.ActiveProgram(); active != p.handle {
		err := &UsageError{Program: p.name, Op: "Flush", Reason: "program is not active"}
		common.Logger().Warn("uniform flush ignored", "error", err, "active", active, "handle", p.handle)
		return err
	}

	textureUnit := int32(0)
	for _, name := range p.table.DataNames() {
		slot := p.table.Slot(name)
		location := int32(-1)
		if loc, ok := p.locations[name]; ok {
			location = loc
		}
		if slot.Type.IsSampler() {
			unit := textureUnit
			textureUnit++
			if slot.Dirty {
				p.device.BindTexture(unit, slot.Value.Texture, location)
				slot.Dirty = false
			}
			continue
		}
		if !slot.Dirty {
			continue
		}
		if location >= 0 {
			s.upload(location, slot.Value)
		}
		slot.Dirty = false
	}
	return nil
}

// upload dispatches one value to the device. The switch is exhaustive over
// the closed UniformValue variant.
func (s *UniformStore) upload(location int32, v shader.UniformValue) {
	d := s.owner.device
	switch v.Type {
	case shader.TypeBool:
		d.UploadBool(location, v.Bool)
	case shader.TypeInt:
		d.UploadInt(location, v.Int)
	case shader.TypeFloat:
		d.UploadFloat(location, v.Float)
	case shader.TypeVec2:
		d.UploadVec2(location, v.Vec2)
	case shader.TypeVec3:
		d.UploadVec3(location, v.Vec3)
	case shader.TypeVec4:
		d.UploadVec4(location, v.Vec4)
	case shader.TypeMat2:
		d.UploadMat2(location, v.Mat2)
	case shader.TypeMat3:
		d.UploadMat3(location, v.Mat3)
	case shader.TypeMat4:
		d.UploadMat4(location, v.Mat4)
	case shader.TypeSampler2D, shader.TypeSampler3D:
		// Samplers take the texture unit path in Flush.
	}
}
