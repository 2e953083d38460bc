package bodies

// Inner returns the Sun, the rocky planets and Earth's Moon.
func Inner() []Spec {
	return []Spec{
		{Name: "Sun", Mass: 1.989e30, Distance: F(0), Velocity: F(0), Color: "yellow"},
		{Name: "Mercury", Mass: 3.3011e23, Distance: F(0.387), Velocity: F(47.87e3), Color: "orange"},
		{Name: "Venus", Mass: 4.8675e24, Distance: F(0.723), Velocity: F(35.02e3), Color: "yellow"},
		{Name: "Earth", Mass: 5.97237e24, Distance: F(1), Velocity: F(29.78e3), Color: "blue"},
		// slightly past 1 AU, Earth's velocity plus the Moon's orbital velocity
		{Name: "Earth's Moon", Mass: 7.342e22, Distance: F(1.00257), Velocity: F(29.78e3 + 1.022e3), Color: "gray"},
		{Name: "Mars", Mass: 6.4171e23, Distance: F(1.524), Velocity: F(24.07e3), Color: "red"},
	}
}

// Outer returns the giant planets, their major moons and Pluto.
func Outer() []Spec {
	return []Spec{
		{Name: "Jupiter", Mass: 1.898e27, Distance: F(5.2), Velocity: F(13.07e3), Color: "brown"},
		{Name: "Io", Mass: 8.9319e22, Distance: F(5.2 + 0.002821), Velocity: F(13.07e3 + 17.334e3), Color: "yellow"},
		{Name: "Europa", Mass: 4.7998e22, Distance: F(5.2 + 0.004486), Velocity: F(13.07e3 + 13.74e3), Color: "white"},
		{Name: "Ganymede", Mass: 1.4819e23, Distance: F(5.2 + 0.007155), Velocity: F(13.07e3 + 10.88e3), Color: "gray"},
		{Name: "Callisto", Mass: 1.0759e23, Distance: F(5.2 + 0.012585), Velocity: F(13.07e3 + 8.204e3), Color: "darkgray"},
		{Name: "Saturn", Mass: 5.683e26, Distance: F(9.5), Velocity: F(9.68e3), Color: "goldenrod"},
		{Name: "Titan", Mass: 1.3452e23, Distance: F(9.5 + 0.008168), Velocity: F(9.68e3 + 5.57e3), Color: "orange"},
		{Name: "Uranus", Mass: 8.681e25, Distance: F(19.8), Velocity: F(6.81e3), Color: "lightblue"},
		{Name: "Neptune", Mass: 1.024e26, Distance: F(30.1), Velocity: F(5.43e3), Color: "blue"},
		{Name: "Pluto", Mass: 1.309e22, Distance: F(39.48), Velocity: F(4.74e3), Color: "coral"},
	}
}

// SolarSystem returns Inner followed by Outer.
func SolarSystem() []Spec {
	return append(Inner(), Outer()...)
}

// Jovian returns Jupiter and the Galilean moons around a Sun, small enough
// to follow moon orbits on a terminal canvas.
func Jovian() []Spec {
	specs := []Spec{Inner()[0]}
	return append(specs, Outer()[:5]...)
}

// Tables maps preset table names to their constructors.
var Tables = map[string]func() []Spec{
	"solar":  SolarSystem,
	"inner":  Inner,
	"outer":  func() []Spec { return append([]Spec{Inner()[0]}, Outer()...) },
	"jovian": Jovian,
}
