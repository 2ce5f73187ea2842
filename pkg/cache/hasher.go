package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
)

// ArcSpec - ребро задачи в каноническом представлении
type ArcSpec struct {
	From     int64
	To       int64
	Capacity int64
	Cost     int64
}

// InstanceHash вычисляет хеш задачи для использования как ключ кэша
func InstanceHash(source, sink int64, arcs []ArcSpec) string {
	data := instanceToCanonical(source, sink, arcs)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:16])
}

// instanceToCanonical создаёт детерминированное представление задачи
func instanceToCanonical(source, sink int64, arcs []ArcSpec) []byte {
	sorted := make([]ArcSpec, len(arcs))
	copy(sorted, arcs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].From != sorted[j].From {
			return sorted[i].From < sorted[j].From
		}
		if sorted[i].To != sorted[j].To {
			return sorted[i].To < sorted[j].To
		}
		if sorted[i].Capacity != sorted[j].Capacity {
			return sorted[i].Capacity < sorted[j].Capacity
		}
		return sorted[i].Cost < sorted[j].Cost
	})

	var result []byte
	result = append(result, []byte(fmt.Sprintf("s:%d,t:%d;", source, sink))...)
	for _, a := range sorted {
		result = append(result, []byte(fmt.Sprintf("a:%d:%d:%d:%d;",
			a.From, a.To, a.Capacity, a.Cost))...)
	}
	return result
}

// BuildSolveKey строит ключ кэша для результата решения
func BuildSolveKey(instanceHash, algorithm string) string {
	return fmt.Sprintf("solve:%s:%s", algorithm, instanceHash)
}

// QuickHash быстрый хеш для произвольных данных
func QuickHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ShortHash короткий хеш (16 символов)
func ShortHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:8])
}
