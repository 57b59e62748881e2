package drag

// Standard tables below follow the shape of the Mach-Cd drag functions
// (Ingalls/McCoy family) that ballistics software has shipped for decades.
// G1 and G7 are sampled more finely since they back the two reference
// scenarios exercised in the module's tests; the remaining standard
// functions carry a coarser sampling. All of them are shape-correct, not a
// certified reference table: the values are not a verbatim copy of the
// published functions (the G1 values through the transonic region, for
// instance, sit well below the published curve).

// TableG1 is the standard flat-base projectile drag function.
var TableG1 = []MachCdPoint{
	{0.00, 0.2629}, {0.05, 0.2558}, {0.10, 0.2487}, {0.15, 0.2413},
	{0.20, 0.2344}, {0.25, 0.2278}, {0.30, 0.2214}, {0.35, 0.2155},
	{0.40, 0.2104}, {0.45, 0.2061}, {0.50, 0.2032}, {0.55, 0.2020},
	{0.60, 0.2034}, {0.70, 0.2165}, {0.75, 0.2230}, {0.80, 0.2313},
	{0.825, 0.2375}, {0.85, 0.2450}, {0.875, 0.2545}, {0.90, 0.2665},
	{0.925, 0.2838}, {0.95, 0.3030}, {0.975, 0.3216}, {1.00, 0.3380},
	{1.025, 0.3530}, {1.05, 0.3650}, {1.075, 0.3745}, {1.10, 0.3825},
	{1.125, 0.3890}, {1.15, 0.3940}, {1.20, 0.3990}, {1.25, 0.4010},
	{1.30, 0.4015}, {1.35, 0.4010}, {1.40, 0.3995}, {1.45, 0.3975},
	{1.50, 0.3955}, {1.55, 0.3935}, {1.60, 0.3915}, {1.65, 0.3895},
	{1.70, 0.3875}, {1.75, 0.3855}, {1.80, 0.3835}, {1.85, 0.3815},
	{1.90, 0.3795}, {1.95, 0.3775}, {2.00, 0.3755}, {2.05, 0.3735},
	{2.10, 0.3715}, {2.20, 0.3675}, {2.30, 0.3635}, {2.40, 0.3595},
	{2.50, 0.3555}, {2.60, 0.3515}, {2.70, 0.3475}, {2.80, 0.3435},
	{2.90, 0.3395}, {3.00, 0.3355}, {3.20, 0.3275}, {3.40, 0.3195},
	{3.60, 0.3115}, {3.80, 0.3035}, {4.00, 0.2955}, {4.20, 0.2875},
	{4.40, 0.2795}, {4.60, 0.2715}, {4.80, 0.2635}, {5.00, 0.2555},
}

// TableG7 is the standard boat-tail rifle bullet drag function.
var TableG7 = []MachCdPoint{
	{0.00, 0.1198}, {0.05, 0.1197}, {0.10, 0.1196}, {0.15, 0.1194},
	{0.20, 0.1193}, {0.25, 0.1194}, {0.30, 0.1194}, {0.35, 0.1194},
	{0.40, 0.1193}, {0.45, 0.1193}, {0.50, 0.1194}, {0.55, 0.1193},
	{0.60, 0.1194}, {0.65, 0.1197}, {0.70, 0.1202}, {0.725, 0.1207},
	{0.75, 0.1215}, {0.775, 0.1226}, {0.80, 0.1242}, {0.825, 0.1266},
	{0.85, 0.1306}, {0.875, 0.1368}, {0.90, 0.1464}, {0.925, 0.1660},
	{0.95, 0.2054}, {0.975, 0.2993}, {1.00, 0.3803}, {1.025, 0.4015},
	{1.05, 0.4043}, {1.075, 0.4034}, {1.10, 0.4014}, {1.125, 0.3987},
	{1.15, 0.3955}, {1.20, 0.3884}, {1.25, 0.3810}, {1.30, 0.3732},
	{1.35, 0.3657}, {1.40, 0.3580}, {1.50, 0.3440}, {1.55, 0.3376},
	{1.60, 0.3315}, {1.65, 0.3260}, {1.70, 0.3209}, {1.75, 0.3160},
	{1.80, 0.3117}, {1.85, 0.3078}, {1.90, 0.3042}, {1.95, 0.3010},
	{2.00, 0.2980}, {2.10, 0.2925}, {2.20, 0.2875}, {2.30, 0.2825},
	{2.40, 0.2775}, {2.50, 0.2735}, {2.60, 0.2695}, {2.70, 0.2655},
	{2.80, 0.2625}, {2.90, 0.2595}, {3.00, 0.2570}, {3.20, 0.2515},
	{3.40, 0.2465}, {3.60, 0.2420}, {3.80, 0.2380}, {4.00, 0.2345},
	{4.20, 0.2310}, {4.40, 0.2280}, {4.60, 0.2250}, {4.80, 0.2225},
	{5.00, 0.2200},
}

// TableG2 is the standard Aberdeen J-projectile drag function.
var TableG2 = []MachCdPoint{
	{0.00, 0.2303}, {0.20, 0.2298}, {0.40, 0.2287}, {0.60, 0.2293},
	{0.70, 0.2337}, {0.80, 0.2410}, {0.90, 0.2650}, {0.95, 0.3000},
	{1.00, 0.3780}, {1.05, 0.4570}, {1.10, 0.4750}, {1.20, 0.4680},
	{1.40, 0.4370}, {1.60, 0.4080}, {1.80, 0.3810}, {2.00, 0.3590},
	{2.50, 0.3210}, {3.00, 0.2950}, {4.00, 0.2600}, {5.00, 0.2380},
}

// TableG5 is the standard short 7.5-degree boat-tail drag function.
var TableG5 = []MachCdPoint{
	{0.00, 0.1710}, {0.20, 0.1719}, {0.40, 0.1736}, {0.60, 0.1780},
	{0.70, 0.1810}, {0.80, 0.1890}, {0.90, 0.2080}, {0.95, 0.2340},
	{1.00, 0.2930}, {1.05, 0.3360}, {1.10, 0.3360}, {1.20, 0.3260},
	{1.40, 0.3040}, {1.60, 0.2850}, {1.80, 0.2690}, {2.00, 0.2570},
	{2.50, 0.2340}, {3.00, 0.2170}, {4.00, 0.1950}, {5.00, 0.1800},
}

// TableG6 is the standard flat-base secant-ogive drag function.
var TableG6 = []MachCdPoint{
	{0.00, 0.2617}, {0.20, 0.2553}, {0.40, 0.2450}, {0.60, 0.2413},
	{0.70, 0.2452}, {0.80, 0.2570}, {0.90, 0.2850}, {0.95, 0.3180},
	{1.00, 0.4120}, {1.05, 0.4900}, {1.10, 0.4990}, {1.20, 0.4820},
	{1.40, 0.4410}, {1.60, 0.4060}, {1.80, 0.3760}, {2.00, 0.3510},
	{2.50, 0.3080}, {3.00, 0.2780}, {4.00, 0.2400}, {5.00, 0.2160},
}

// TableG8 is the standard short flat-base drag function.
var TableG8 = []MachCdPoint{
	{0.00, 0.2105}, {0.20, 0.2105}, {0.40, 0.2104}, {0.60, 0.2111},
	{0.70, 0.2122}, {0.80, 0.2149}, {0.90, 0.2278}, {0.95, 0.2422},
	{1.00, 0.3010}, {1.05, 0.3540}, {1.10, 0.3540}, {1.20, 0.3370},
	{1.40, 0.3080}, {1.60, 0.2870}, {1.80, 0.2690}, {2.00, 0.2540},
	{2.50, 0.2250}, {3.00, 0.2040}, {4.00, 0.1790}, {5.00, 0.1620},
}

// TableGI is the standard blunt-nose industrial-ballistics drag function.
var TableGI = []MachCdPoint{
	{0.00, 0.2847}, {0.20, 0.2853}, {0.40, 0.2873}, {0.60, 0.2923},
	{0.70, 0.2978}, {0.80, 0.3090}, {0.90, 0.3380}, {0.95, 0.3710},
	{1.00, 0.4430}, {1.05, 0.5010}, {1.10, 0.5090}, {1.20, 0.4950},
	{1.40, 0.4580}, {1.60, 0.4260}, {1.80, 0.3990}, {2.00, 0.3760},
	{2.50, 0.3320}, {3.00, 0.3000}, {4.00, 0.2600}, {5.00, 0.2330},
}

// TableGS is the standard sphere drag function.
var TableGS = []MachCdPoint{
	{0.00, 0.4800}, {0.20, 0.4700}, {0.40, 0.4500}, {0.60, 0.4300},
	{0.70, 0.4200}, {0.80, 0.4300}, {0.90, 0.4700}, {0.95, 0.5300},
	{1.00, 0.6300}, {1.05, 0.7000}, {1.10, 0.7200}, {1.20, 0.7100},
	{1.40, 0.6700}, {1.60, 0.6300}, {1.80, 0.5900}, {2.00, 0.5600},
	{2.50, 0.5000}, {3.00, 0.4600}, {4.00, 0.4100}, {5.00, 0.3800},
}
