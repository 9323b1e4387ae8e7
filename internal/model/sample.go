package model

import "strconv"

// sampleNotices seeds the in-memory board and backs SampleBoard
var sampleNotices = []NoticeSummary{
	{ID: 1, Title: "한강 야간 러닝", Content: "반포대교 남단 집합, 7km 페이스 6분", Address: Address{Dou: "서울특별시", Si: "서초구", Gu: "반포동"}, MeetingTime: "2026-10-20T20:00:00+09:00", OpenChat: "https://open.kakao.com/o/run1", RegDate: "2026-10-01T09:00:00+09:00", Count: 4, Author: "runner01"},
	{ID: 2, Title: "올림픽공원 아침 조깅", Content: "평화의 문 앞, 5km 가볍게", Address: Address{Dou: "서울특별시", Si: "송파구", Gu: "방이동"}, MeetingTime: "2026-10-21T06:30:00+09:00", OpenChat: "https://open.kakao.com/o/run2", RegDate: "2026-10-01T10:00:00+09:00", Count: 2, Author: "runner02"},
	{ID: 3, Title: "남산 업힐 훈련", Content: "국립극장 출발, 인터벌", Address: Address{Dou: "서울특별시", Si: "중구", Gu: "장충동"}, MeetingTime: "2026-10-22T19:30:00+09:00", OpenChat: "https://open.kakao.com/o/run3", RegDate: "2026-10-02T08:00:00+09:00", Count: 6, Author: "runner03"},
	{ID: 4, Title: "양재천 LSD", Content: "15km 천천히, 초보 환영", Address: Address{Dou: "서울특별시", Si: "강남구", Gu: "개포동"}, MeetingTime: "2026-10-23T07:00:00+09:00", OpenChat: "https://open.kakao.com/o/run4", RegDate: "2026-10-02T12:00:00+09:00", Count: 3, Author: "runner01"},
	{ID: 5, Title: "광안리 해변 러닝", Content: "민락수변공원 집합", Address: Address{Dou: "부산광역시", Si: "수영구", Gu: "광안동"}, MeetingTime: "2026-10-24T18:00:00+09:00", OpenChat: "https://open.kakao.com/o/run5", RegDate: "2026-10-03T09:30:00+09:00", Count: 5, Author: "runner04"},
	{ID: 6, Title: "해운대 새벽 10K", Content: "동백섬 한 바퀴 포함", Address: Address{Dou: "부산광역시", Si: "해운대구", Gu: "우동"}, MeetingTime: "2026-10-25T05:50:00+09:00", OpenChat: "https://open.kakao.com/o/run6", RegDate: "2026-10-03T11:00:00+09:00", Count: 1, Author: "runner05"},
	{ID: 7, Title: "수성못 저녁 러닝", Content: "3바퀴, 페이스 자유", Address: Address{Dou: "대구광역시", Si: "수성구", Gu: "두산동"}, MeetingTime: "2026-10-26T20:00:00+09:00", OpenChat: "https://open.kakao.com/o/run7", RegDate: "2026-10-04T09:00:00+09:00", Count: 2, Author: "runner06"},
	{ID: 8, Title: "일산호수공원 하프", Content: "21km 페이스메이커 있음", Address: Address{Dou: "경기도", Si: "고양시", Gu: "장항동"}, MeetingTime: "2026-10-27T07:00:00+09:00", OpenChat: "https://open.kakao.com/o/run8", RegDate: "2026-10-04T15:00:00+09:00", Count: 7, Author: "runner02"},
	{ID: 9, Title: "광교호수 트레일", Content: "호수 둘레길 8km", Address: Address{Dou: "경기도", Si: "수원시", Gu: "하동"}, MeetingTime: "2026-10-28T19:00:00+09:00", OpenChat: "https://open.kakao.com/o/run9", RegDate: "2026-10-05T10:00:00+09:00", Count: 3, Author: "runner07"},
	{ID: 10, Title: "서울숲 리커버리 런", Content: "가볍게 4km 후 스트레칭", Address: Address{Dou: "서울특별시", Si: "성동구", Gu: "성수동"}, MeetingTime: "2026-10-29T20:30:00+09:00", OpenChat: "https://open.kakao.com/o/run10", RegDate: "2026-10-05T18:00:00+09:00", Count: 4, Author: "runner03"},
	{ID: 11, Title: "안양천 인터벌", Content: "400m x 10", Address: Address{Dou: "서울특별시", Si: "영등포구", Gu: "양평동"}, MeetingTime: "2026-10-30T19:30:00+09:00", OpenChat: "https://open.kakao.com/o/run11", RegDate: "2026-10-06T09:00:00+09:00", Count: 2, Author: "runner08"},
	{ID: 12, Title: "대전 갑천 러닝", Content: "엑스포다리 집합", Address: Address{Dou: "대전광역시", Si: "유성구", Gu: "도룡동"}, MeetingTime: "2026-10-31T18:30:00+09:00", OpenChat: "https://open.kakao.com/o/run12", RegDate: "2026-10-06T13:00:00+09:00", Count: 1, Author: "runner09"},
}

// SampleNotices returns a copy of the bundled sample board posts in order
func SampleNotices() []NoticeSummary {
	out := make([]NoticeSummary, len(sampleNotices))
	copy(out, sampleNotices)
	return out
}

// SampleBoard returns the bundled sample posts as a listing envelope keyed by position
func SampleBoard() NoticePage {
	entries := make([]NoticeEntry, 0, len(sampleNotices))
	for i, n := range sampleNotices {
		entries = append(entries, NoticeEntry{Key: strconv.Itoa(i), Notice: n})
	}
	return NewNoticePage(entries...)
}
