package resume

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_UpdatePersonalInfo_MergesPatch(t *testing.T) {
	s := NewStore()
	s.UpdatePersonalInfo(PersonalInfoPatch{FirstName: String("Ann"), City: String("Oslo")})
	s.UpdatePersonalInfo(PersonalInfoPatch{City: String("Bergen")})

	info := s.Document().PersonalInfo
	assert.Equal(t, "Ann", info.FirstName)
	assert.Equal(t, "Bergen", info.City)
	assert.Equal(t, "", info.LastName)
}

func TestStore_AddSkill_AssignsIncreasingIDs(t *testing.T) {
	s := NewStore()
	first := s.AddSkill(Skill{ID: "ignored", Name: "Go", Level: LevelExpert})
	second := s.AddSkill(Skill{Name: "SQL", Level: LevelAdvanced})

	assert.Equal(t, "200", first)
	assert.Equal(t, "201", second)

	skills := s.Document().Skills
	require.Len(t, skills, 2)
	assert.Equal(t, "200", skills[0].ID)
	assert.Equal(t, "Go", skills[0].Name)
	assert.Equal(t, 202, s.NextID())
}

func TestStore_IDsSharedAcrossLists(t *testing.T) {
	s := NewStore()
	e := s.AddExperience(Experience{Company: "Acme"})
	ed := s.AddEducation(Education{Institution: "MIT"})
	sk := s.AddSkill(Skill{Name: "Go"})

	assert.Equal(t, []string{"200", "201", "202"}, []string{e, ed, sk})
}

func TestStore_UpdateAndDelete(t *testing.T) {
	s := NewStore()
	id := s.AddExperience(Experience{Company: "Acme", Position: "Dev"})

	s.UpdateExperience(id, ExperiencePatch{Position: String("Lead"), Current: Bool(true)})
	exp := s.Document().Experience[0]
	assert.Equal(t, "Acme", exp.Company)
	assert.Equal(t, "Lead", exp.Position)
	assert.True(t, exp.Current)

	s.DeleteExperience(id)
	assert.Empty(t, s.Document().Experience)
	assert.NotNil(t, s.Document().Experience)
}

func TestStore_UnknownIDIsNoOp(t *testing.T) {
	s := NewStore()
	s.AddSkill(Skill{Name: "Go", Level: LevelExpert})
	s.AddEducation(Education{Institution: "MIT"})
	before := s.Document()

	s.DeleteSkill("999")
	s.UpdateSkill("999", SkillPatch{Name: String("Rust")})
	s.DeleteEducation("nope")
	s.UpdateEducation("nope", EducationPatch{Degree: String("BSc")})

	assert.Equal(t, before, s.Document())
}

func TestStore_CurrentDoesNotClearEndDate(t *testing.T) {
	s := NewStore()
	id := s.AddExperience(Experience{EndDate: "05/2023"})
	s.UpdateExperience(id, ExperiencePatch{Current: Bool(true)})

	exp := s.Document().Experience[0]
	assert.True(t, exp.Current)
	assert.Equal(t, "05/2023", exp.EndDate)
}

func TestStore_SetFresherKeepsExperience(t *testing.T) {
	s := NewStore()
	s.AddExperience(Experience{Company: "Acme"})
	s.SetFresher(true)

	doc := s.Document()
	assert.True(t, doc.IsFresher)
	assert.Len(t, doc.Experience, 1)
}

func TestStore_ResetData(t *testing.T) {
	s := NewStore()
	s.UpdatePersonalInfo(PersonalInfoPatch{FirstName: String("Ann")})
	s.AddSkill(Skill{Name: "Go"})
	s.SetFresher(true)

	s.ResetData()

	assert.Equal(t, Empty(), s.Document())
	assert.Equal(t, IDFloor, s.NextID())
}

func TestStore_Load_RecomputesCounter(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want int
	}{
		{name: "empty document", doc: Document{}, want: 201},
		{name: "ids below floor", doc: Document{Skills: []Skill{{ID: "5"}}}, want: 201},
		{
			name: "max across lists",
			doc: Document{
				Experience: []Experience{{ID: "210"}},
				Education:  []Education{{ID: "305"}},
				Skills:     []Skill{{ID: "250"}},
			},
			want: 306,
		},
		{name: "non numeric ids count as zero", doc: Document{Skills: []Skill{{ID: "sample-4"}}}, want: 201},
		{name: "numeric prefix is parsed", doc: Document{Skills: []Skill{{ID: "400abc"}}}, want: 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			s.Load(tt.doc)
			assert.Equal(t, tt.want, s.NextID())
		})
	}
}

func TestStore_Load_NormalizesNilLists(t *testing.T) {
	s := NewStore()
	s.Load(Document{PersonalInfo: PersonalInfo{FirstName: "Ann"}})

	doc := s.Document()
	assert.NotNil(t, doc.Experience)
	assert.NotNil(t, doc.Education)
	assert.NotNil(t, doc.Skills)
	assert.Equal(t, "Ann", doc.PersonalInfo.FirstName)
}

func TestStore_DocumentIsACopy(t *testing.T) {
	s := NewStore()
	s.AddSkill(Skill{Name: "Go"})

	doc := s.Document()
	doc.Skills[0].Name = "mutated"

	assert.Equal(t, "Go", s.Document().Skills[0].Name)
}

func TestStore_SubscribersSeeEveryMutation(t *testing.T) {
	s := NewStore()
	var seen []Document
	s.Subscribe(func(d Document) { seen = append(seen, d) })

	s.UpdatePersonalInfo(PersonalInfoPatch{FirstName: String("Ann")})
	s.AddSkill(Skill{Name: "Go"})
	s.DeleteSkill("missing")

	require.Len(t, seen, 3)
	assert.Equal(t, "Ann", seen[0].PersonalInfo.FirstName)
	assert.Len(t, seen[1].Skills, 1)
}

func TestStore_ConcurrentMutationsNotifyLatestLast(t *testing.T) {
	for range 20 {
		s := NewStore()
		var (
			mu   sync.Mutex
			last Document
		)
		s.Subscribe(func(d Document) {
			// A slow listener widens the window for deliveries to cross.
			if len(d.Skills)%3 == 0 {
				time.Sleep(200 * time.Microsecond)
			}
			mu.Lock()
			last = d
			mu.Unlock()
		})

		var wg sync.WaitGroup
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.AddSkill(Skill{Name: "x"})
			}()
		}
		wg.Wait()

		mu.Lock()
		assert.Equal(t, s.Document(), last)
		mu.Unlock()
	}
}

func TestStore_ConcurrentAddsProduceUniqueIDs(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	ids := make(chan string, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- s.AddSkill(Skill{Name: "x"})
		}()
	}
	wg.Wait()
	close(ids)

	unique := map[string]bool{}
	for id := range ids {
		unique[id] = true
	}
	assert.Len(t, unique, 100)
	assert.Equal(t, 300, s.NextID())
}

func TestDocument_HasUserData(t *testing.T) {
	assert.False(t, Empty().HasUserData())
	assert.False(t, Document{PersonalInfo: PersonalInfo{FirstName: "   "}}.HasUserData())
	assert.True(t, Document{PersonalInfo: PersonalInfo{Summary: "hi"}}.HasUserData())
	assert.True(t, Document{Skills: []Skill{{}}}.HasUserData())
	// phone alone does not count
	assert.False(t, Document{PersonalInfo: PersonalInfo{Phone: "123"}}.HasUserData())
}
