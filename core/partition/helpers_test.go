package partition

import "github.com/kilianp07/studiodesk/core/factory"

func factoryConf(typ string, conf map[string]any) factory.ModuleConfig {
	return factory.ModuleConfig{Type: typ, Conf: conf}
}
