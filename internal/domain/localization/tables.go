package localization

// Inspection status
var InspectionStatus = NewLookupTable("inspection status",
	[]string{"PENDING", "IN_PROGRESS", "COMPLETED", "CANCELLED"},
	map[string]string{
		"pendiente":   "PENDING",
		"programada":  "PENDING",
		"en progreso": "IN_PROGRESS",
		"en curso":    "IN_PROGRESS",
		"completada":  "COMPLETED",
		"completado":  "COMPLETED",
		"finalizada":  "COMPLETED",
		"aprobada":    "COMPLETED",
		"cancelada":   "CANCELLED",
		"anulada":     "CANCELLED",
		"canceled":    "CANCELLED",
	})

// Inspection priority. Blank input defaults to MEDIUM at the call site.
var InspectionPriority = NewLookupTable("priority",
	[]string{"LOW", "MEDIUM", "HIGH", "URGENT"},
	map[string]string{
		"baja":    "LOW",
		"media":   "MEDIUM",
		"normal":  "MEDIUM",
		"alta":    "HIGH",
		"urgente": "URGENT",
		"critica": "URGENT",
	})

// Inspection type
var InspectionType = NewLookupTable("inspection type",
	[]string{"QUALITY", "SAFETY", "PROGRESS", "ENVIRONMENTAL", "FINAL"},
	map[string]string{
		"calidad":             "QUALITY",
		"seguridad":           "SAFETY",
		"seguridad e higiene": "SAFETY",
		"avance":              "PROGRESS",
		"avance de obra":      "PROGRESS",
		"ambiental":           "ENVIRONMENTAL",
		"medio ambiente":      "ENVIRONMENTAL",
		"final":               "FINAL",
		"recepcion final":     "FINAL",
	})

// Account type
var AccountType = NewLookupTable("account type",
	[]string{"ASSET", "LIABILITY", "EQUITY", "INCOME", "EXPENSE"},
	map[string]string{
		"activo":          "ASSET",
		"activos":         "ASSET",
		"pasivo":          "LIABILITY",
		"pasivos":         "LIABILITY",
		"patrimonio":      "EQUITY",
		"patrimonio neto": "EQUITY",
		"capital":         "EQUITY",
		"ingreso":         "INCOME",
		"ingresos":        "INCOME",
		"revenue":         "INCOME",
		"gasto":           "EXPENSE",
		"gastos":          "EXPENSE",
		"egreso":          "EXPENSE",
		"egresos":         "EXPENSE",
		"costo":           "EXPENSE",
		"costos":          "EXPENSE",
	})

// Rubro type
var RubroType = NewLookupTable("rubro type",
	[]string{"MATERIAL", "LABOR", "EQUIPMENT", "SUBCONTRACT", "OTHER"},
	map[string]string{
		"material":     "MATERIAL",
		"materiales":   "MATERIAL",
		"mano de obra": "LABOR",
		"labor":        "LABOR",
		"equipo":       "EQUIPMENT",
		"equipos":      "EQUIPMENT",
		"maquinaria":   "EQUIPMENT",
		"subcontrato":  "SUBCONTRACT",
		"subcontratos": "SUBCONTRACT",
		"otro":         "OTHER",
		"otros":        "OTHER",
		"varios":       "OTHER",
	})

// Project status
var ProjectStatus = NewLookupTable("project status",
	[]string{"PLANNING", "IN_PROGRESS", "ON_HOLD", "COMPLETED", "CANCELLED"},
	map[string]string{
		"planificacion": "PLANNING",
		"planificado":   "PLANNING",
		"en curso":      "IN_PROGRESS",
		"en progreso":   "IN_PROGRESS",
		"en ejecucion":  "IN_PROGRESS",
		"pausado":       "ON_HOLD",
		"suspendido":    "ON_HOLD",
		"en pausa":      "ON_HOLD",
		"completado":    "COMPLETED",
		"finalizado":    "COMPLETED",
		"terminado":     "COMPLETED",
		"cancelado":     "CANCELLED",
		"canceled":      "CANCELLED",
	})

// Employee status
var EmployeeStatus = NewLookupTable("employee status",
	[]string{"ACTIVE", "INACTIVE", "ON_LEAVE"},
	map[string]string{
		"activo":      "ACTIVE",
		"inactivo":    "INACTIVE",
		"baja":        "INACTIVE",
		"licencia":    "ON_LEAVE",
		"de licencia": "ON_LEAVE",
	})
