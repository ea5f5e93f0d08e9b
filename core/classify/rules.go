package classify

// DefaultRules returns the built-in keyword list. Entries are in priority
// order: "語" sits after "英語" so English labels never fall into 本土語, and
// "地科" precedes "地理".
func DefaultRules() []Rule {
	return []Rule{
		{"國文", "國文"}, {"文選", "國文"}, {"各類", "國文"}, {"閱讀", "國文"},
		{"英文", "英文"}, {"英語", "英文"},
		{"數學", "數學"}, {"數乙", "數學"}, {"數甲", "數學"},
		{"物理", "物理"}, {"化學", "化學"}, {"生物", "生物"},
		{"地科", "地球科學"}, {"地球", "地球科學"},
		{"歷史", "歷史"}, {"地理", "地理"}, {"公民", "公民"},
		{"體育", "體育"}, {"音樂", "音樂"}, {"美術", "美術"}, {"藝術", "藝術與生活"},
		{"健康", "健康與護理"}, {"護理", "健康與護理"},
		{"全民", "全民國防"}, {"國防", "全民國防"},
		{"本土", "本土語"}, {"語", "本土語"},
		{"生命", "生命教育"}, {"生活", "生活科技"},
		{"資訊", "資訊"}, {"科技", "生活科技"},
		{"微課程", "微課程"}, {"多元選修", "多元選修"},
	}
}
