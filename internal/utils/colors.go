package utils

type colors struct {
	c map[string]int
}

var Colors = colors{
	// Palette: https://coolors.co/84a98c-c1121f-468faf-f4a259-ffd23f
	c: map[string]int{
		"Cambridge blue":     0x84a98c,
		"Engineering orange": 0xc1121f,
		"Air force blue":     0x468faf,
		"Sandy brown":        0xf4a259,
		"Sunglow":            0xffd23f,
	},
}

// Ok returns the color code for success messages
func (c colors) Ok() int {
	return c.c["Cambridge blue"]
}

// Info returns the color code for informational messages
func (c colors) Info() int {
	return c.c["Air force blue"]
}

// Error returns the color code for error messages
func (c colors) Error() int {
	return c.c["Engineering orange"]
}

// Warning returns the color code for warning messages
func (c colors) Warning() int {
	return c.c["Sandy brown"]
}

// Fancy returns the color code for celebratory messages
func (c colors) Fancy() int {
	return c.c["Sunglow"]
}
