package config

// SecretValue is a string that never prints its content.
type SecretValue string

func (s SecretValue) Value() string {
	return string(s)
}

func (s SecretValue) String() string {
	if s == "" {
		return ""
	}
	return "*******"
}

func (s SecretValue) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
