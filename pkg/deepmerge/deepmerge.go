package deepmerge

// Merge выполняет рекурсивное слияние двух map: значения override имеют приоритет
// Вложенные map сливаются рекурсивно, скаляры и списки заменяются целиком
// Исходные map не мутируются, результат - новая map
func Merge(base, override map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(base)+len(override))

	for key, value := range base {
		result[key] = value
	}

	for key, overrideValue := range override {
		baseValue, exists := result[key]
		if !exists {
			result[key] = overrideValue
			continue
		}

		baseMap, baseIsMap := baseValue.(map[string]interface{})
		overrideMap, overrideIsMap := overrideValue.(map[string]interface{})

		if baseIsMap && overrideIsMap {
			result[key] = Merge(baseMap, overrideMap)
		} else {
			result[key] = overrideValue
		}
	}

	return result
}
