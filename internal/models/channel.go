package models

// ChannelList is the fixed, externally supplied set of valid channel names.
// The chat core treats it as opaque configuration.
type ChannelList []string

func (l ChannelList) Contains(name string) bool {
	for _, c := range l {
		if c == name {
			return true
		}
	}
	return false
}
