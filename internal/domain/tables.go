package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	// Catalog
	&MenuItem{},
	// Ordering
	&Order{},
	&PayEventLog{},
}
