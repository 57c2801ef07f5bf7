package gen

// biome identifies one of the built-in climate zones.
type biome byte

const (
	biomeOcean biome = iota
	biomePlains
	biomeForest
	biomeDarkForest
	biomeTaiga
	biomeSnowyTaiga
	biomeDesert
	biomeJungle
	biomeMountains
	biomeBeach
	biomeTundra
	biomeSavanna
)

const seaLevel = 62

// BiomeGenerator selects biomes using temperature/rainfall noise fields.
type BiomeGenerator struct {
	tempNoise *NoiseGenerator
	rainNoise *NoiseGenerator
	terrain   *NoiseGenerator
}

// NewBiomeGenerator creates a BiomeGenerator from a seed.
func NewBiomeGenerator(seed int64) *BiomeGenerator {
	return &BiomeGenerator{
		tempNoise: NewNoiseGenerator(seed + 100),
		rainNoise: NewNoiseGenerator(seed + 200),
		terrain:   NewNoiseGenerator(seed),
	}
}

// BiomeAt returns the biome at the given world block coordinates.
func (bg *BiomeGenerator) BiomeAt(bx, bz int) biome {
	// Sample temperature and rainfall at large scale.
	tx := float64(bx) / 512.0
	tz := float64(bz) / 512.0
	temp := bg.tempNoise.OctaveNoise2D(tx, tz, 4, 0.5)*0.8 + 0.75 // center around 0.75
	rain := bg.rainNoise.OctaveNoise2D(tx+100, tz+100, 4, 0.5)*0.5 + 0.5

	// Very low terrain at this position means ocean.
	nx := float64(bx) / 128.0
	nz := float64(bz) / 128.0
	terrainBase := bg.terrain.OctaveNoise2D(nx, nz, 6, 0.5)
	terrainHeight := 62.0 + terrainBase*8.0
	if terrainHeight < float64(seaLevel)-8 {
		return biomeOcean
	}

	// Terrain near sea level becomes beach.
	if terrainHeight >= float64(seaLevel)-8 && terrainHeight < float64(seaLevel)-2 {
		return biomeBeach
	}

	return selectBiome(temp, rain)
}

// selectBiome maps temperature and rainfall to a biome.
//
//	Temp\Rain     | Dry (<0.3)  | Medium (0.3-0.6) | Wet (>0.6)
//	Cold <0.3     | Tundra      | Snowy Taiga      | Taiga
//	Mild 0.3-0.7  | Plains      | Forest           | Dark Forest
//	Warm 0.7-1.2  | Savanna     | Plains           | Jungle
//	Hot >1.2      | Desert      | Desert           | Jungle
func selectBiome(temp, rain float64) biome {
	switch {
	case temp < 0.3:
		switch {
		case rain < 0.3:
			return biomeTundra
		case rain < 0.6:
			return biomeSnowyTaiga
		default:
			return biomeTaiga
		}
	case temp < 0.7:
		switch {
		case rain < 0.3:
			return biomePlains
		case rain < 0.6:
			return biomeForest
		default:
			return biomeDarkForest
		}
	case temp < 1.2:
		switch {
		case rain < 0.3:
			return biomeSavanna
		case rain < 0.6:
			return biomePlains
		default:
			return biomeJungle
		}
	default:
		if rain > 0.6 {
			return biomeJungle
		}
		return biomeDesert
	}
}
