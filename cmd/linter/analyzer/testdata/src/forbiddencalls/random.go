package forbiddencalls

import (
	"math/rand" // want "math/rand is forbidden, use crypto/rand"
)

func Shortcode() byte {
	return byte('a' + rand.Intn(26))
}
