// Package geo реализует вычисление расстояния между двумя географическими
// точками по формуле гаверсинусов (большой круг).
package geo

import "math"

// earthRadiusKm — средний радиус Земли в километрах.
const earthRadiusKm = 6371.0

// Distance возвращает расстояние между двумя точками в километрах.
//
// Координаты задаются в градусах: широта lat1/lat2, долгота lon1/lon2.
// Функция симметрична относительно перестановки точек и возвращает 0
// для совпадающих координат.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlon1 := lon1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	rlon2 := lon2 * math.Pi / 180

	dlat := rlat2 - rlat1
	dlon := rlon2 - rlon1

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
