package points

import "github.com/paulmach/orb/geojson"

// FeatureCollection converts records into GeoJSON points carrying place and feddans.
func FeatureCollection(records []Record) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, r := range records {
		f := geojson.NewFeature(r.Point())
		f.Properties["place"] = r.Place
		f.Properties["feddans"] = r.Feddans
		fc.Append(f)
	}
	return fc
}
