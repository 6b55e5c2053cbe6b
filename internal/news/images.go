package news

import "math/rand"

// Curated Unsplash imagery per topic. The generator never supplies images,
// so every article is assigned one from the pool of its topic.
var topicImages = map[string][]string{
	"AI": {
		"https://images.unsplash.com/photo-1677442136019-21780ecad995?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1620712943543-bcc4688e7485?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1531746790731-6c087fecd65a?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1655720828018-edd2daec9349?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1616161560417-66d4db5892ec?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1591453089816-0fbb9e31a9dd?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1515879218367-8466d910aaa4?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1526374965328-7f61d4dc18c5?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1535378437323-95288ac9dd5c?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1485827404703-89b55fcc595e?auto=format&fit=crop&w=800&q=80",
	},
	"IOT": {
		"https://images.unsplash.com/photo-1558346490-a72e53ae2d4f?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1518770660439-4636190af475?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1563770095-39d468f9a51d?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1580894742597-87bc8789db3d?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1557804506-669a67965ba0?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1519389950473-47ba0277781c?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1563013544-a64831b3f746?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1550009158-9ebf69173e03?auto=format&fit=crop&w=800&q=80",
	},
	"CLOUD": {
		"https://images.unsplash.com/photo-1451187580459-43490279c0fa?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1544197150-b99a580bbcbf?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1560732488-6b0df240254a?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1558494949-ef010cbdcc31?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1531482615713-2afd69097998?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1597852074816-d933c72c6c2e?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1542831371-29b0f74f9713?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1563986768609-322da13575f3?auto=format&fit=crop&w=800&q=80",
	},
	"CYBERSECURITY": {
		"https://images.unsplash.com/photo-1550751827-4bd374c3f58b?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1614064641938-3bbee52942c7?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1555949963-ff9fe0c870eb?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1496096265110-f83ad7f96608?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1510915361405-ef05a8b97165?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1603791440384-56cd371ee9a7?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1509316975850-ff9c5deb0cd9?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1504384308090-c54be3855092?auto=format&fit=crop&w=800&q=80",
	},
	"VLSI": {
		"https://images.unsplash.com/photo-1555664424-778a1e5e1b48?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1591488320449-011701bb6704?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1624969862293-b749659ccc4e?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1605810230434-7631ac76ec81?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1597733336794-12d05021d510?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1534972195531-d756b9bfa9f2?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1610484826917-0f101a7bf7f4?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1592659762303-90081d34b277?auto=format&fit=crop&w=800&q=80",
	},
	"QUANTUM": {
		"https://images.unsplash.com/photo-1635070041078-e363dbe005cb?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1532094349884-543bc11b234d?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1606166187734-a433d1038244?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1462331940025-496dfbfc7564?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1510906594845-bc082582c8cc?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1517976487492-5750f3195933?auto=format&fit=crop&w=800&q=80",
	},
	"BLOCKCHAIN": {
		"https://images.unsplash.com/photo-1639762681485-074b7f938ba0?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1621761191319-c6fb62004040?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1516245834210-c4c142787335?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1518546305927-5a555bb7020d?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1640340434855-6084b1f4901c?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1526304640581-d334cdbbf45e?auto=format&fit=crop&w=800&q=80",
	},
	"ROBOTICS": {
		"https://images.unsplash.com/photo-1485827404703-89b55fcc595e?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1561557944-6e7860d1a7eb?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1531746790731-6c087fecd65a?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1546776310-eef45dd6d63c?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1581090464777-f3220bbe1b8b?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1581092160562-40aa08e78837?auto=format&fit=crop&w=800&q=80",
	},
	"BIOTECH": {
		"https://images.unsplash.com/photo-1532187863486-abf9dbad1b69?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1579154204601-01588f351e67?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1576086213369-97a306d36557?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1583911860205-72f8ac8ddcbe?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1581093450021-4a7360e9a6b5?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1530026405186-ed1f139313f8?auto=format&fit=crop&w=800&q=80",
	},
	"SPACE": {
		"https://images.unsplash.com/photo-1446776811953-b23d57bd21aa?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1451187580459-43490279c0fa?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1457364887197-9150188c107b?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1454789548928-9efd52dc4031?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1517976547714-720226b864c1?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1541185933-ef5d8ed016c2?auto=format&fit=crop&w=800&q=80",
	},
	"CLEANTECH": {
		"https://images.unsplash.com/photo-1497435334941-8c899ee9e8e9?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1509391366360-2e959784a276?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1466611653911-95081537e5b7?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1548337138-e87d889cc369?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1473341304170-971dccb5ac1e?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1508514177221-188b1cf16e9d?auto=format&fit=crop&w=800&q=80",
	},
	"TELECOM": {
		"https://images.unsplash.com/photo-1512428559087-560fa5ce7d94?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1520869562399-e772f042f422?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1544197150-b99a580bbcbf?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1562408590-e32931084e23?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1558346490-a72e53ae2d4f?auto=format&fit=crop&w=800&q=80",
		"https://images.unsplash.com/photo-1510511459019-5dda7724fd82?auto=format&fit=crop&w=800&q=80",
	},
}

// poolKey maps a topic to its image pool. The wildcard and anything
// unrecognized fall back to the AI pool.
func poolKey(topic Topic) string {
	switch topic {
	case TopicIoT:
		return "IOT"
	case TopicCloud:
		return "CLOUD"
	case TopicCybersecurity:
		return "CYBERSECURITY"
	case TopicVLSI:
		return "VLSI"
	case TopicQuantum:
		return "QUANTUM"
	case TopicBlockchain:
		return "BLOCKCHAIN"
	case TopicRobotics:
		return "ROBOTICS"
	case TopicBiotech:
		return "BIOTECH"
	case TopicSpace:
		return "SPACE"
	case TopicCleanTech:
		return "CLEANTECH"
	case TopicTelecom:
		return "TELECOM"
	default:
		return "AI"
	}
}

// TopicImages returns n image URLs for a topic, shuffled so consecutive
// articles in one batch never repeat until the pool is exhausted.
func TopicImages(topic Topic, n int) []string {
	pool := topicImages[poolKey(topic)]

	shuffled := make([]string, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, shuffled[i%len(shuffled)])
	}
	return out
}
