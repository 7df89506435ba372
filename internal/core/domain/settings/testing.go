package settings

type FakeSource struct {
	Values map[Key]string
}

func NewFakeSource(values map[Key]string) *FakeSource {
	if values == nil {
		values = make(map[Key]string)
	}
	return &FakeSource{Values: values}
}

func (s *FakeSource) Get(key Key) (string, error) {
	v, ok := s.Values[key]
	if !ok || v == "" {
		return "", &MissingKeyError{Key: key}
	}
	return v, nil
}
