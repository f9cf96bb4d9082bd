package config

import "os"

// GetEnv lee una variable de entorno o devuelve el valor por defecto.
func GetEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists && v != "" {
		return v
	}
	return defaultValue
}
