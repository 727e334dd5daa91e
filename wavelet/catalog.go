package wavelet

// Wavelet names accepted by Config.Wavelet.
const (
	Morlet     = "morlet"
	MexicanHat = "mexh"
	Paul       = "paul"
	Haar       = "haar"
	DB2        = "db2"
	DB4        = "db4"
)

// Info describes a catalog entry.
type Info struct {
	Name        string
	Description string

	// Orthogonal wavelets double as multi-resolution filter banks.
	Orthogonal bool
}

// catalog is the fixed evaluation order for auto-selection. Ties in score
// resolve to the earlier entry.
var catalog = []Info{
	{Name: Morlet, Description: "complex Morlet, smooth sustained oscillations"},
	{Name: MexicanHat, Description: "Ricker (DOG-2), sharp symmetric transients"},
	{Name: Paul, Description: "complex Paul order 4, asymmetric transients"},
	{Name: Haar, Description: "Haar, step changes and coarse decomposition", Orthogonal: true},
	{Name: DB2, Description: "Daubechies 2, compact orthogonal decomposition", Orthogonal: true},
	{Name: DB4, Description: "Daubechies 4, smooth orthogonal decomposition", Orthogonal: true},
}

// Catalog returns a copy of the wavelet catalog in evaluation order.
func Catalog() []Info {
	out := make([]Info, len(catalog))
	copy(out, catalog)

	return out
}

func infoByName(name string) (Info, bool) {
	for _, info := range catalog {
		if info.Name == name {
			return info, true
		}
	}

	return Info{}, false
}
