package a

import (
	"math/rand"
	mrand "math/rand"
)

func seeded() int {
	r := rand.New(rand.NewSource(1))
	z := rand.NewZipf(r, 1.5, 1, 10)
	_ = z.Uint64()
	return r.Intn(10)
}

func global() int {
	rand.Seed(1)  // want "rand.Seed uses the global source, inject a numtheory.Source instead"
	f := rand.Int // want "rand.Int uses the global source, inject a numtheory.Source instead"
	_ = f
	return mrand.Intn(10) // want "rand.Intn uses the global source, inject a numtheory.Source instead"
}
