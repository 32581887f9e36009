package tags

// staticCardTags is the override table for well-known cards whose text the
// pattern rules misread or cannot see (e.g. Sol Ring's terse wording, lands
// with ability text that trips the ramp rules). Entries here win over every
// derived rule.
var staticCardTags = map[string][]Tag{
	// Mana rocks
	"Sol Ring":              {TagRamp, TagArtifact, TagManaRock},
	"Arcane Signet":         {TagRamp, TagArtifact, TagManaRock},
	"Mana Crypt":            {TagRamp, TagArtifact, TagManaRock},
	"Mana Vault":            {TagRamp, TagArtifact, TagManaRock},
	"Chrome Mox":            {TagRamp, TagArtifact, TagManaRock},
	"Mox Diamond":           {TagRamp, TagArtifact, TagManaRock},
	"Fellwar Stone":         {TagRamp, TagArtifact, TagManaRock},
	"Thought Vessel":        {TagRamp, TagArtifact, TagManaRock},
	"Mind Stone":            {TagRamp, TagArtifact, TagManaRock},
	"Talisman of Dominance": {TagRamp, TagArtifact, TagManaRock},
	"Talisman of Progress":  {TagRamp, TagArtifact, TagManaRock},
	"Talisman of Creativity": {TagRamp, TagArtifact, TagManaRock},
	"Talisman of Conviction": {TagRamp, TagArtifact, TagManaRock},
	"Talisman of Hierarchy":  {TagRamp, TagArtifact, TagManaRock},
	"Coldsteel Heart":        {TagRamp, TagArtifact, TagManaRock, TagTappedEntry},
	"Fire Diamond":           {TagRamp, TagArtifact, TagManaRock, TagTappedEntry},
	"Marble Diamond":         {TagRamp, TagArtifact, TagManaRock, TagTappedEntry},
	"Sky Diamond":            {TagRamp, TagArtifact, TagManaRock, TagTappedEntry},
	"Moss Diamond":           {TagRamp, TagArtifact, TagManaRock, TagTappedEntry},
	"Charcoal Diamond":       {TagRamp, TagArtifact, TagManaRock, TagTappedEntry},
	"Star Compass":           {TagRamp, TagArtifact, TagManaRock, TagTappedEntry},
	"Prismatic Lens":         {TagRamp, TagArtifact, TagManaRock},
	"Thran Dynamo":           {TagRamp, TagArtifact, TagManaRock},
	"Hedron Archive":         {TagRamp, TagArtifact, TagManaRock},
	"Gilded Lotus":           {TagRamp, TagArtifact, TagManaRock},

	// Special lands
	"Command Tower":            {TagLand, TagRamp},
	"Arcane Lighthouse":        {TagLand},
	"Reliquary Tower":          {TagLand},
	"Urborg, Tomb of Yawgmoth": {TagLand, TagRamp},
	"Cabal Coffers":            {TagLand, TagRamp},

	// Fetch lands
	"Evolving Wilds":       {TagLand, TagFetchLand},
	"Terramorphic Expanse": {TagLand, TagFetchLand},

	// Ramp spells
	"Rampant Growth":  {TagRamp, TagSorcery},
	"Cultivate":       {TagRamp, TagSorcery},
	"Kodama's Reach":  {TagRamp, TagSorcery},
	"Farseek":         {TagRamp, TagSorcery},
	"Nature's Lore":   {TagRamp, TagSorcery},
	"Three Visits":    {TagRamp, TagSorcery},
	"Skyshroud Claim": {TagRamp, TagSorcery},

	// Ramp creatures
	"Llanowar Elves":     {TagRamp, TagCreature},
	"Arbor Elf":          {TagRamp, TagCreature},
	"Birds of Paradise":  {TagRamp, TagCreature},
	"Fyndhorn Elves":     {TagRamp, TagCreature},
	"Sakura-Tribe Elder": {TagRamp, TagCreature},

	// Card draw
	"Rhystic Study":   {TagDraw, TagEnchantment},
	"Mystic Remora":   {TagDraw, TagEnchantment},
	"Phyrexian Arena": {TagDraw, TagEnchantment},
	"Sylvan Library":  {TagDraw, TagEnchantment},

	// Removal
	"Swords to Plowshares": {TagRemoval, TagInstant},
	"Path to Exile":        {TagRemoval, TagInstant},
	"Assassin's Trophy":    {TagRemoval, TagInstant},
	"Beast Within":         {TagRemoval, TagInstant},
	"Chaos Warp":           {TagRemoval, TagInstant},
	"Generous Gift":        {TagRemoval, TagInstant},

	// Board wipes
	"Wrath of God":    {TagBoardWipe, TagSorcery},
	"Damnation":       {TagBoardWipe, TagSorcery},
	"Cyclonic Rift":   {TagBoardWipe, TagInstant},
	"Blasphemous Act": {TagBoardWipe, TagSorcery},

	// Counterspells
	"Counterspell":     {TagCounterspell, TagInstant},
	"Swan Song":        {TagCounterspell, TagInstant},
	"Mana Drain":       {TagCounterspell, TagInstant},
	"Force of Will":    {TagCounterspell, TagInstant},
	"Pact of Negation": {TagCounterspell, TagInstant},

	// Tutors
	"Demonic Tutor":     {TagTutor, TagSorcery},
	"Vampiric Tutor":    {TagTutor, TagInstant},
	"Worldly Tutor":     {TagTutor, TagInstant},
	"Mystical Tutor":    {TagTutor, TagInstant},
	"Enlightened Tutor": {TagTutor, TagInstant},
}
