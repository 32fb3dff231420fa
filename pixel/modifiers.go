package pixel

// Modifiers select how vector values relate to stored values.
// They are fixed per call site; a conversion never changes them.
type Modifiers uint8

const (
	// Scale normalizes vectors to [0,1]. Without it vectors carry the
	// encoding's native magnitude (0..255 for 8-bit channels).
	Scale Modifiers = 1 << iota

	// Premultiply makes vectors carry premultiplied alpha regardless of
	// how the encoding stores it.
	Premultiply

	// Linear converts RGB from sRGB to linear light on the way in and back
	// on the way out. Alpha is never companded.
	Linear
)

// None leaves values at native magnitude, straight alpha, sRGB.
const None Modifiers = 0

// Has reports whether all bits of f are set in m.
func (m Modifiers) Has(f Modifiers) bool {
	return m&f == f
}

// String returns a compact description such as "scale|premultiply".
func (m Modifiers) String() string {
	if m == None {
		return "none"
	}
	s := ""
	add := func(name string) {
		if s != "" {
			s += "|"
		}
		s += name
	}
	if m.Has(Scale) {
		add("scale")
	}
	if m.Has(Premultiply) {
		add("premultiply")
	}
	if m.Has(Linear) {
		add("linear")
	}
	return s
}

// expand turns straight, [0,1], sRGB vectors decoded from storage into the
// representation m asks for. maxValue is the encoding's native channel maximum.
func expand(vs []Vec4, m Modifiers, maxValue float32) {
	if m == Scale {
		return
	}
	linear := m.Has(Linear)
	premul := m.Has(Premultiply)
	scale := !m.Has(Scale) && maxValue != 1
	for i := range vs {
		v := vs[i]
		if linear {
			v.R = SRGBToLinear(v.R)
			v.G = SRGBToLinear(v.G)
			v.B = SRGBToLinear(v.B)
		}
		if premul {
			v = v.Premultiply()
		}
		if scale {
			v = v.Mul(maxValue)
		}
		vs[i] = v
	}
}

// reduce is the inverse of expand. It rewrites vs in place, which is why
// FromVector is allowed to clobber its input.
func reduce(vs []Vec4, m Modifiers, maxValue float32) {
	if m == Scale {
		return
	}
	linear := m.Has(Linear)
	premul := m.Has(Premultiply)
	scale := !m.Has(Scale) && maxValue != 1
	inv := 1 / maxValue
	for i := range vs {
		v := vs[i]
		if scale {
			v = v.Mul(inv)
		}
		if premul {
			v = v.Unpremultiply()
		}
		if linear {
			v.R = LinearToSRGB(v.R)
			v.G = LinearToSRGB(v.G)
			v.B = LinearToSRGB(v.B)
		}
		vs[i] = v
	}
}
